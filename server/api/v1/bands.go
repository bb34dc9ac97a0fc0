package v1

import (
	"net/http"

	"github.com/zintix-labs/sudoduel"
)

type BandsHandler struct {
	Arena *sudoduel.Arena
}

func NewBandsHandler(a *sudoduel.Arena) *BandsHandler {
	return &BandsHandler{Arena: a}
}

// Bands 以穩定順序列出所有難度分級與其參數。
//
//	GET /v1/bands
func (bh *BandsHandler) Bands(w http.ResponseWriter, q *http.Request) {
	writeJSON(w, bh.Arena.Bands())
}
