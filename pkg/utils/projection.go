// Package utils 提供游戏开发中常用的工具函数
//
// projection.go 提供世界坐标到屏幕坐标的透视投影。
//
// # 坐标系统
//
//   - **世界坐标**：X 为横向（车道号 × 车道宽），Y 为离地高度，Z 为前进方向的纵深
//   - **屏幕坐标**：相对于窗口左上角，Y 轴向下
//
// # 投影公式
//
//	relZ    = z - CameraZ
//	scale   = FocalLength / (FocalLength + relZ)
//	screenX = width/2 + x * (width/LaneSpan) * scale
//	screenY = horizon + (ground - horizon) * scale - y * HeightScale * scale
//
// 其中 horizon = height * HorizonRatio，ground = height * GroundRatio。
// 纵深越大 scale 越小，实体越靠近地平线。
package utils

// Camera 透视投影参数
type Camera struct {
	FocalLength  float64 // 焦距
	CameraZ      float64 // 相机位于玩家身后的纵深
	HorizonRatio float64 // 地平线在屏幕高度中的比例
	GroundRatio  float64 // 玩家脚下地面在屏幕高度中的比例
	LaneSpan     float64 // 屏幕宽度对应的世界横向跨度
	HeightScale  float64 // 世界高度到像素的倍率
}

// DefaultCamera 返回默认相机参数
func DefaultCamera() Camera {
	return Camera{
		FocalLength:  300,
		CameraZ:      -5,
		HorizonRatio: 0.35,
		GroundRatio:  0.9,
		LaneSpan:     12,
		HeightScale:  50,
	}
}

// Projection 一次投影的结果
type Projection struct {
	X, Y  float64 // 屏幕坐标
	Scale float64 // 透视缩放系数
}

// Project 把世界坐标投影到宽 width、高 height 的屏幕上
func (c Camera) Project(x, y, z, width, height float64) Projection {
	relZ := z - c.CameraZ
	scale := c.FocalLength / (c.FocalLength + relZ)

	horizonY := height * c.HorizonRatio
	groundY := height * c.GroundRatio
	xFactor := width / c.LaneSpan

	return Projection{
		X:     width/2 + x*xFactor*scale,
		Y:     horizonY + (groundY-horizonY)*scale - y*c.HeightScale*scale,
		Scale: scale,
	}
}

// Visible 纵深 z 是否位于相机前方（投影有意义）
func (c Camera) Visible(z float64) bool {
	return c.FocalLength+z-c.CameraZ > 0
}
