package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"resty.dev/v3"
)

const (
	maxParallelChecks = 50
	checkTimeout      = 5 * time.Second
)

// ProxySupplier hands out upstream proxies in round-robin order
type ProxySupplier interface {
	Get() string
}

type proxySupplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewProxySupplier keeps the proxies that can reach testURL, preserving the
// configured order.
func NewProxySupplier(ctx context.Context, proxies []string, testURL string) ProxySupplier {
	if len(proxies) == 0 {
		return &proxySupplier{}
	}

	log.Infof("🔄 Testing %d proxies in parallel...", len(proxies))

	valid := make([]bool, len(proxies))
	p := pool.New().WithMaxGoroutines(maxParallelChecks)
	for i, proxyURL := range proxies {
		p.Go(func() {
			if isProxyValid(ctx, proxyURL, testURL) {
				valid[i] = true
				log.Infof("✅ Proxy %s is working", proxyURL)
			} else {
				log.Infof("❌ Proxy %s is not working, skipping", proxyURL)
			}
		})
	}
	p.Wait()

	validProxies := make([]string, 0, len(proxies))
	for i, ok := range valid {
		if ok {
			validProxies = append(validProxies, proxies[i])
		}
	}

	log.Infof("✅ ProxySupplier initialized with %d working proxies out of %d tested", len(validProxies), len(proxies))

	return NewStaticSupplier(validProxies)
}

// NewStaticSupplier rotates over proxies without checking them.
func NewStaticSupplier(proxies []string) ProxySupplier {
	return &proxySupplier{proxies: proxies}
}

// Get returns the next proxy URL, or "" when none are available
func (p *proxySupplier) Get() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	proxy := p.proxies[p.current]
	p.current = (p.current + 1) % len(p.proxies)

	return proxy
}

func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(checkTimeout).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)

	if err != nil {
		log.Debugf("Proxy test failed for %s: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Proxy test failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
