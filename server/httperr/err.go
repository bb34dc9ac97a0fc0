// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package httperr 把內部錯誤分級映射成 HTTP status code。
// 屬於 HTTP 邊界層，放在 server/* 之下，核心 errs 不依賴 net/http。
package httperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zintix-labs/sudoduel/errs"
)

// StatusCode 映射規則：
//   - ctx timeout/cancel → 504/408
//   - errs.Warn          → 400（請求/參數問題）
//   - errs.Fatal         → 500（系統問題）
func StatusCode(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	status := http.StatusInternalServerError
	var e *errs.E
	if errors.As(err, &e) {
		switch e.ErrLv {
		case errs.Warn:
			status = http.StatusBadRequest
		case errs.Fatal:
			status = http.StatusInternalServerError
		}
	}
	return status
}

// Errs 決定 status code 並寫回簡單的 http.Error。
func Errs(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	http.Error(w, err.Error(), StatusCode(err))
}

// Log 依映射後的 status 決定 log 等級，4xx 類只記 Warn。
func Log(log *slog.Logger, msg string, err error) {
	if err == nil || log == nil {
		return
	}
	status := StatusCode(err)
	switch {
	case status >= 500:
		log.Error(msg, slog.Any("err", err))
	case status == 408 || status == 429:
		log.Warn(msg, slog.Any("err", err))
	}
}
