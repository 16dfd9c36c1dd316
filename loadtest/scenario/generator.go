package scenario

import (
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// Generator は 負荷試験のターゲットを生成する構造体です。
// 送信済みの操作から各アドレスの存在を推測し、なるべく成功する操作を選びます。
type Generator struct {
	BaseURL     string
	ReadRatio   float64
	RemoveRatio float64
	MaxValue    uint64

	addrs   []common.Address
	present []bool
	rnd     *rand.Rand
	mu      sync.Mutex
}

// RandomAddresses は n 個のランダムなアドレスを生成します。
func RandomAddresses(n int) ([]common.Address, error) {
	out := make([]common.Address, 0, n)
	for i := 0; i < n; i++ {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("generate key: %w", err)
		}
		out = append(out, crypto.PubkeyToAddress(key.PublicKey))
	}
	return out, nil
}

// NewGenerator は 指定されたパラメータに基づいて新しい Generator を作成します。
func NewGenerator(base string, addrs []common.Address, readRatio, removeRatio float64, maxValue uint64, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if maxValue == 0 {
		maxValue = 1
	}
	return &Generator{
		BaseURL:     base,
		ReadRatio:   clamp(readRatio, 0, 1),
		RemoveRatio: clamp(removeRatio, 0, 1),
		MaxValue:    maxValue,
		addrs:       addrs,
		present:     make([]bool, len(addrs)),
		rnd:         rand.New(rand.NewSource(seed)),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Targeter は vegeta.Targeter インターフェースを実装し、負荷試験のターゲットを生成します。
func (g *Generator) Targeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		g.mu.Lock()
		defer g.mu.Unlock()

		if len(g.addrs) == 0 || g.rnd.Float64() < g.ReadRatio {
			t.Method = http.MethodGet
			t.URL = g.BaseURL + "/minimum"
			t.Body = nil
			t.Header = nil
			return nil
		}

		i := g.rnd.Intn(len(g.addrs))
		url := fmt.Sprintf("%s/entries/%s", g.BaseURL, g.addrs[i].Hex())

		switch {
		case !g.present[i]:
			t.Method = http.MethodPost
			g.present[i] = true
		case g.rnd.Float64() < g.RemoveRatio:
			t.Method = http.MethodDelete
			t.URL = url
			t.Body = nil
			t.Header = nil
			g.present[i] = false
			return nil
		default:
			t.Method = http.MethodPut
		}

		v := uint64(g.rnd.Int63n(int64(min(g.MaxValue, 1<<62))))
		t.URL = url
		t.Body = []byte(`{"value":"` + strconv.FormatUint(v, 10) + `"}`)
		if t.Header == nil {
			t.Header = make(http.Header, 1)
		}
		t.Header.Set("Content-Type", "application/json")
		return nil
	}
}
