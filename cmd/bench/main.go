package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/scmmishra/subly/internal/kv"
	"github.com/scmmishra/subly/internal/models"
	"github.com/scmmishra/subly/internal/presets"
	"github.com/scmmishra/subly/internal/registry"
	"github.com/scmmishra/subly/internal/slug"
)

const (
	linkCount   = 200
	benchDomain = "bench.test"
	browserUA   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	crawlerUA   = "facebookexternalhit/1.1"
)

func main() {
	concurrency := flag.Int("c", 50, "number of concurrent workers")
	duration := flag.Duration("d", 10*time.Second, "benchmark duration")
	crawlerShare := flag.Float64("crawlers", 0.1, "fraction of requests sent with a preview-crawler user agent")
	flag.Parse()

	fmt.Println("Subly Redirect Benchmark")
	fmt.Println("========================")

	// 1. Build server binary
	fmt.Printf("Building server...     ")
	tmpDir, err := os.MkdirTemp("", "subly-bench-*")
	if err != nil {
		fatal("create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	binPath := filepath.Join(tmpDir, "subly-server")
	build := exec.Command("go", "build", "-o", binPath, "./cmd/server")
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		fatal("build server: %v", err)
	}
	fmt.Println("done")

	// 2. Seed store
	fmt.Printf("Seeding store...       ")
	dbPath := filepath.Join(tmpDir, "subly.db")
	subs, err := seed(dbPath)
	if err != nil {
		fatal("seed: %v", err)
	}
	fmt.Printf("done (%d links)\n", len(subs))

	// 3. Start server
	fmt.Printf("Starting server...     ")
	port, err := freePort()
	if err != nil {
		fatal("find free port: %v", err)
	}

	srv := exec.Command(binPath)
	srvLog, err := os.Create(filepath.Join(tmpDir, "server.log"))
	if err != nil {
		fatal("create server log: %v", err)
	}
	defer srvLog.Close()
	srv.Stdout = srvLog
	srv.Stderr = srvLog
	srv.Env = append(os.Environ(),
		"SUBLY_ADMIN_KEY=bench",
		"SUBLY_DOMAINS="+benchDomain,
		fmt.Sprintf("SUBLY_PORT=%d", port),
		"SUBLY_STORE=sqlite:"+dbPath,
		"SUBLY_CACHE_SIZE=10000",
		"SUBLY_FLUSH_INTERVAL=1h",
		"SUBLY_BUFFER_SIZE=500000",
		"SUBLY_LOG_LEVEL=warn",
	)
	if err := srv.Start(); err != nil {
		fatal("start server: %v", err)
	}
	defer func() {
		srv.Process.Signal(syscall.SIGINT)
		srv.Wait()
	}()

	// 4. Wait for server ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	if err := waitReady(baseURL+"/healthz", 5*time.Second); err != nil {
		fatal("server not ready: %v", err)
	}
	fmt.Printf("ready (port %d)\n", port)

	// 5. Run benchmark
	fmt.Printf("Benchmarking...        %s, %d workers\n", *duration, *concurrency)

	client := &http.Client{
		Transport: &http.Transport{
			MaxIdleConnsPerHost: *concurrency,
		},
	}

	rng := rand.New(rand.NewSource(42))
	seeds := make([]int64, *concurrency)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	var (
		mu        sync.Mutex
		latencies []time.Duration
		errors    int64
		reqCount  atomic.Int64
	)

	benchStart := time.Now()
	deadline := benchStart.Add(*duration)
	var wg sync.WaitGroup

	// Progress bar
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		totalSec := duration.Seconds()
		for {
			select {
			case <-done:
				printProgress(totalSec, totalSec, reqCount.Load())
				fmt.Println()
				return
			case <-ticker.C:
				elapsed := time.Since(benchStart).Seconds()
				if elapsed > totalSec {
					elapsed = totalSec
				}
				printProgress(elapsed, totalSec, reqCount.Load())
			}
		}
	}()

	for i := range *concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			localRng := rand.New(rand.NewSource(seeds[i]))
			var localLats []time.Duration
			var localErrs int64

			for time.Now().Before(deadline) {
				sub := subs[localRng.Intn(len(subs))]
				ua, marker := browserUA, "ref="
				if localRng.Float64() < *crawlerShare {
					ua, marker = crawlerUA, "og:title"
				}

				req, err := http.NewRequest("GET", baseURL+"/p", nil)
				if err != nil {
					localErrs++
					continue
				}
				req.Host = sub + "." + benchDomain
				req.Header.Set("User-Agent", ua)

				start := time.Now()
				resp, err := client.Do(req)
				if err != nil {
					reqCount.Add(1)
					localErrs++
					continue
				}
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				elapsed := time.Since(start)

				reqCount.Add(1)

				if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), marker) {
					localErrs++
					continue
				}

				localLats = append(localLats, elapsed)
			}

			mu.Lock()
			latencies = append(latencies, localLats...)
			errors += localErrs
			mu.Unlock()
		}()
	}

	wg.Wait()
	close(done)
	time.Sleep(10 * time.Millisecond) // let progress goroutine print final line

	// 6. Report results
	total := int64(len(latencies)) + errors
	rps := float64(total) / duration.Seconds()

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	fmt.Println("")
	fmt.Println("Results")
	fmt.Println("-------")
	fmt.Printf("Requests:    %s\n", commaFmt(total))
	fmt.Printf("Errors:      %d\n", errors)
	fmt.Printf("RPS:         %.1f\n", rps)

	if len(latencies) > 0 {
		fmt.Printf("Latency p50: %s\n", fmtDur(percentile(latencies, 50)))
		fmt.Printf("Latency p95: %s\n", fmtDur(percentile(latencies, 95)))
		fmt.Printf("Latency p99: %s\n", fmtDur(percentile(latencies, 99)))
	}
}

// seed creates linkCount records through the registry and returns their subdomains.
func seed(dbPath string) ([]string, error) {
	store, err := kv.OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	p := presets.Default(nil)
	reg := registry.New(models.NewLinkStore(store), p, slug.New(nil, p.Names))

	subs := make([]string, 0, linkCount)
	for i := range linkCount {
		created, err := reg.Create(context.Background(), registry.CreateInput{
			CustomCode: fmt.Sprintf("bench-%03d", i+1),
			TargetURL:  fmt.Sprintf("https://example.com/%d", i+1),
			Domain:     benchDomain,
		})
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i+1, err)
		}
		subs = append(subs, created.Link.Subdomain)
	}
	return subs, nil
}

func freePort() (int, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port, nil
}

func waitReady(url string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	client := &http.Client{Timeout: 500 * time.Millisecond}
	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout after %s", timeout)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func printProgress(elapsed, total float64, reqs int64) {
	const barWidth = 30
	frac := elapsed / total
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * barWidth)
	bar := make([]byte, barWidth)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	rps := float64(0)
	if elapsed > 0 {
		rps = float64(reqs) / elapsed
	}
	fmt.Printf("\r  [%s] %.0fs/%.0fs  %s reqs  %.0f rps",
		string(bar), elapsed, total, commaFmt(reqs), rps)
}

func fmtDur(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
}

func commaFmt(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", args...)
	os.Exit(1)
}
