package app

import (
	"fmt"
	"log"

	"github.com/gonewx/runner/pkg/config"
	"github.com/gonewx/runner/pkg/embedded"
)

// 嵌入配置路径
const (
	GameConfigPath = "data/game_config.yaml"
	RosterPath     = "data/characters.yaml"
)

// LoadConfigs 加载游戏配置和角色表
//
// 路径非空时从磁盘读取；否则读取嵌入资源；
// 嵌入资源未初始化或缺少对应文件时使用内置默认值。
func LoadConfigs(configPath, rosterPath string) (*config.GameConfig, *config.Roster, error) {
	gameCfg, err := loadGameConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	roster, err := loadRoster(rosterPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[Config] 配置加载完成: %d 个角色", roster.Len())
	return gameCfg, roster, nil
}

func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载游戏配置: %s", path)
		return config.LoadGameConfig(path)
	}
	if !embedded.Exists(GameConfigPath) {
		log.Printf("[Config] 未找到嵌入的 %s，使用默认配置", GameConfigPath)
		return config.DefaultGameConfig(), nil
	}
	data, err := embedded.ReadFile(GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", GameConfigPath, err)
	}
	return config.ParseGameConfig(data)
}

func loadRoster(path string) (*config.Roster, error) {
	if path != "" {
		log.Printf("[Config] 加载角色表: %s", path)
		return config.LoadRoster(path)
	}
	if !embedded.Exists(RosterPath) {
		log.Printf("[Config] 未找到嵌入的 %s，使用默认角色表", RosterPath)
		return config.DefaultRoster(), nil
	}
	data, err := embedded.ReadFile(RosterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", RosterPath, err)
	}
	return config.ParseRoster(data)
}
