// Package app 管理長生命週期元件的啟動與優雅關閉。
package app

import "context"

// Component 抽象「可啟動 / 可關閉」的長生命週期元件。
// Run() 必須阻塞到元件停止（正常或錯誤）；Shutdown(ctx) 應尊重 ctx deadline。
// 典型實例：HTTP Server、背景 worker。
type Component interface {
	Run() error
	Shutdown(ctx context.Context) error
}
