package http

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/holiman/uint256"

	"github.com/amakane-hakari/cappedset/internal/cappedset"
)

// Registry は HTTP 層が必要とするセットの操作です。
type Registry interface {
	Insert(key common.Address, v uint256.Int) error
	Update(key common.Address, v uint256.Int) error
	Remove(key common.Address) error
	Get(key common.Address) (uint256.Int, bool)
	Min() (common.Address, uint256.Int, error)
	Stats() cappedset.Stats
}

// HandlerFunc はエラーハンドリングを行うHTTPハンドラの型です。
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ServeHTTP は返されたエラーを AppError に変換して書き出します。
func (h HandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		writeError(w, FromStdError(err))
	}
}

type entriesHandler struct {
	reg Registry
}

func (h *entriesHandler) mount(r chi.Router) {
	r.Route("/entries", func(r chi.Router) {
		r.Method(http.MethodPost, "/{address}", HandlerFunc(h.insert))
		r.Method(http.MethodPut, "/{address}", HandlerFunc(h.update))
		r.Method(http.MethodDelete, "/{address}", HandlerFunc(h.remove))
		r.Method(http.MethodGet, "/{address}", HandlerFunc(h.get))
	})
	r.Method(http.MethodGet, "/minimum", HandlerFunc(h.minimum))
	r.Method(http.MethodGet, "/stats", HandlerFunc(h.stats))
}

type valueRequest struct {
	Value string `json:"value"`
}

type entryDTO struct {
	Address string `json:"address"`
	Value   string `json:"value,omitempty"`
}

var errValueOverflow = errors.New("value exceeds 256 bits")

// parseValue は 10進数または 0x 付き16進数の文字列を 256bit 符号なし整数に変換します。
func parseValue(s string) (uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uint256.Int{}, errors.New("empty value")
	}
	b := new(big.Int)
	var ok bool
	if rest, found := strings.CutPrefix(strings.ToLower(s), "0x"); found {
		_, ok = b.SetString(rest, 16)
	} else {
		_, ok = b.SetString(s, 10)
	}
	if !ok {
		return uint256.Int{}, fmt.Errorf("invalid number %q", s)
	}
	if b.Sign() < 0 {
		return uint256.Int{}, errors.New("value must not be negative")
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return uint256.Int{}, errValueOverflow
	}
	return *v, nil
}

func addressParam(r *http.Request) (common.Address, error) {
	raw := chi.URLParam(r, "address")
	if !common.IsHexAddress(raw) {
		return common.Address{}, BadRequest("invalid address")
	}
	return common.HexToAddress(raw), nil
}

func decodeValue(r *http.Request) (uint256.Int, error) {
	var req valueRequest
	if err := DecodeJSON(r, &req); err != nil {
		return uint256.Int{}, err
	}
	v, err := parseValue(req.Value)
	if err != nil {
		return uint256.Int{}, BadRequest("invalid value: " + err.Error())
	}
	return v, nil
}

func (h *entriesHandler) insert(w http.ResponseWriter, r *http.Request) error {
	addr, err := addressParam(r)
	if err != nil {
		return err
	}
	v, err := decodeValue(r)
	if err != nil {
		return err
	}
	if err := h.reg.Insert(addr, v); err != nil {
		return err
	}
	writeSuccess(w, http.StatusCreated, entryDTO{Address: addr.Hex(), Value: v.Dec()})
	return nil
}

func (h *entriesHandler) update(w http.ResponseWriter, r *http.Request) error {
	addr, err := addressParam(r)
	if err != nil {
		return err
	}
	v, err := decodeValue(r)
	if err != nil {
		return err
	}
	if err := h.reg.Update(addr, v); err != nil {
		return err
	}
	writeSuccess(w, http.StatusOK, entryDTO{Address: addr.Hex(), Value: v.Dec()})
	return nil
}

func (h *entriesHandler) remove(w http.ResponseWriter, r *http.Request) error {
	addr, err := addressParam(r)
	if err != nil {
		return err
	}
	if err := h.reg.Remove(addr); err != nil {
		return err
	}
	writeSuccess(w, http.StatusOK, entryDTO{Address: addr.Hex()})
	return nil
}

func (h *entriesHandler) get(w http.ResponseWriter, r *http.Request) error {
	addr, err := addressParam(r)
	if err != nil {
		return err
	}
	v, ok := h.reg.Get(addr)
	if !ok {
		return &cappedset.KeyError[common.Address]{Op: "get", Key: addr, Err: cappedset.ErrKeyNotFound}
	}
	writeSuccess(w, http.StatusOK, entryDTO{Address: addr.Hex(), Value: v.Dec()})
	return nil
}

func (h *entriesHandler) minimum(w http.ResponseWriter, _ *http.Request) error {
	addr, v, err := h.reg.Min()
	if err != nil {
		return err
	}
	writeSuccess(w, http.StatusOK, entryDTO{Address: addr.Hex(), Value: v.Dec()})
	return nil
}

func (h *entriesHandler) stats(w http.ResponseWriter, _ *http.Request) error {
	writeSuccess(w, http.StatusOK, h.reg.Stats())
	return nil
}
