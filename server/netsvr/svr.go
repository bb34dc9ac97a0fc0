package netsvr

import (
	"net/http"

	"github.com/zintix-labs/sudoduel/server/app"
)

// NetSvr 封裝「路由行為 + 服務啟停」。只暴露給最外層組裝程式使用；
// 其他層面向 NetRouter 即可。換 http 框架時只要重寫 adapter。
// NetSvr 同時實作 app.Component，可直接交給 app.App 管理生命週期。
type NetSvr interface {
	NetRouter
	app.Component
}

// NetRouter 是純路由行為。刻意不含 Run/Shutdown，
// 讓 handler 與子模組拿不到 server 的啟停控制權。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
