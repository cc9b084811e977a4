// Package ads models the monetization capability as an optional provider.
// When no ad network is configured the null provider keeps every call a safe
// no-op, so callers never branch on availability.
package ads

import (
	"context"
	"errors"
	"strconv"
	"time"

	"autocare/internal/log"
	"autocare/internal/store"
)

// Google test unit ids, used whenever test mode is on.
const (
	TestBannerUnitID       = "ca-app-pub-3940256099942544/6300978111"
	TestInterstitialUnitID = "ca-app-pub-3940256099942544/1033173712"
	TestRewardedUnitID     = "ca-app-pub-3940256099942544/5224354917"
)

// Interstitial frequency policy.
const (
	actionThreshold     = 3
	testActionThreshold = 1
	minBetweenAds       = 60 * time.Second
)

// Provider is the ad-network contract. RecordAction counts a user action and
// reports whether the frequency policy allows an interstitial now; when it
// returns true the policy state has already been reset.
type Provider interface {
	Initialize(ctx context.Context) error
	Available() bool
	BannerUnitID() string
	RecordAction(ctx context.Context) (bool, error)
}

// NullProvider is selected when no ad network is configured.
type NullProvider struct{}

func (NullProvider) Initialize(context.Context) error { return nil }

func (NullProvider) Available() bool { return false }

func (NullProvider) BannerUnitID() string { return "" }

func (NullProvider) RecordAction(context.Context) (bool, error) { return false, nil }

// Config carries the unit ids and test-mode flag for a configured network.
type Config struct {
	BannerID       string
	InterstitialID string
	RewardedID     string
	TestMode       bool
}

// GatedProvider enforces the interstitial frequency policy on top of the KV
// store. The counter and last-shown timestamp survive restarts so a relaunch
// cannot be used to dodge the interval rule.
type GatedProvider struct {
	cfg         Config
	store       store.Store
	logger      *log.Logger
	initialized bool
	now         func() time.Time
}

func NewGatedProvider(cfg Config, s store.Store, logger *log.Logger) *GatedProvider {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentAds})
	}
	return &GatedProvider{
		cfg:    cfg,
		store:  s,
		logger: logger.WithComponent(log.ComponentAds),
		now:    time.Now,
	}
}

func (p *GatedProvider) Initialize(ctx context.Context) error {
	if p.initialized {
		return nil
	}
	p.initialized = true
	p.logger.InfoContext(ctx, "Ads provider initialized",
		"testMode", p.cfg.TestMode)
	return nil
}

func (p *GatedProvider) Available() bool {
	return p.cfg.TestMode || p.cfg.BannerID != "" || p.cfg.InterstitialID != ""
}

func (p *GatedProvider) BannerUnitID() string {
	if p.cfg.TestMode {
		return TestBannerUnitID
	}
	return p.cfg.BannerID
}

func (p *GatedProvider) InterstitialUnitID() string {
	if p.cfg.TestMode {
		return TestInterstitialUnitID
	}
	return p.cfg.InterstitialID
}

// RecordAction bumps the persisted action counter, then checks the policy:
// enough actions accumulated and the minimum interval since the last
// interstitial elapsed. On a green light the counter is reset and the
// timestamp stamped before returning.
func (p *GatedProvider) RecordAction(ctx context.Context) (bool, error) {
	counter, err := p.readInt(ctx, store.KeyAdActionCounter)
	if err != nil {
		return false, err
	}
	counter++
	if err := p.writeInt(ctx, store.KeyAdActionCounter, counter); err != nil {
		return false, err
	}

	threshold := actionThreshold
	interval := minBetweenAds
	if p.cfg.TestMode {
		threshold = testActionThreshold
		interval = 0
	}
	if counter < threshold {
		return false, nil
	}

	lastShown, err := p.readInt(ctx, store.KeyAdLastShown)
	if err != nil {
		return false, err
	}
	if lastShown > 0 && p.now().Sub(time.UnixMilli(int64(lastShown))) < interval {
		return false, nil
	}

	if err := p.writeInt(ctx, store.KeyAdActionCounter, 0); err != nil {
		return false, err
	}
	if err := p.writeInt(ctx, store.KeyAdLastShown, int(p.now().UnixMilli())); err != nil {
		return false, err
	}
	p.logger.DebugContext(ctx, "Interstitial slot granted")
	return true, nil
}

func (p *GatedProvider) readInt(ctx context.Context, key string) (int, error) {
	blob, err := p.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(string(blob))
	if err != nil {
		// Corrupt state resets the gate rather than blocking it forever.
		return 0, nil
	}
	return n, nil
}

func (p *GatedProvider) writeInt(ctx context.Context, key string, n int) error {
	return p.store.Set(ctx, key, []byte(strconv.Itoa(n)))
}
