package slug

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	PathCodeLength     = 8
	TrackingCodeLength = 6
	suffixLength       = 6
)

// Source yields uniformly distributed ints in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is unusable.
		panic("slug: crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// Generator produces path codes, tracking codes and default subdomains.
// It is safe for concurrent use only if its Source is.
type Generator struct {
	src   Source
	names []string
}

func New(src Source, names []string) *Generator {
	if src == nil {
		src = CryptoSource{}
	}
	return &Generator{src: src, names: names}
}

// Random returns a string of length characters drawn from the Base62 alphabet.
func (g *Generator) Random(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[g.src.Intn(len(charset))]
	}
	return string(b)
}

func (g *Generator) PathCode() string {
	return g.Random(PathCodeLength)
}

func (g *Generator) TrackingCode() string {
	return strings.ToUpper(g.Random(TrackingCodeLength))
}

// DefaultSubdomain joins a random pool name and a random suffix, e.g. "luna-k3x9qa".
func (g *Generator) DefaultSubdomain() string {
	suffix := strings.ToLower(g.Random(suffixLength))
	if len(g.names) == 0 {
		return suffix
	}
	return strings.ToLower(g.Pick(g.names)) + "-" + suffix
}

// Pick returns a uniformly chosen element of pool, or "" for an empty pool.
func (g *Generator) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[g.src.Intn(len(pool))]
}
