package gold

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c := NewCache()

	series := &PriceSeries{Currency: "USD", Unit: "oz"}
	c.Set("intl_gold_1m", series)

	got, ok := c.Get("intl_gold_1m", time.Minute)
	if !ok {
		t.Fatal("Get() missed a freshly set key")
	}
	if got != series {
		t.Error("Get() returned a different value than Set() stored")
	}
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("never_set", time.Minute); ok {
		t.Error("Get() hit on a key that was never set")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache()
	c.Set("krx_gold_1d", &PriceSeries{Currency: "KRW", Unit: "g"})

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("krx_gold_1d", 10*time.Millisecond); ok {
		t.Error("Get() hit after TTL elapsed")
	}

	// Same entry is still a hit under a longer TTL: expiry is evaluated
	// at read time per key family
	if _, ok := c.Get("krx_gold_1d", time.Hour); !ok {
		t.Error("Get() missed within TTL")
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := NewCache()

	first := &PremiumSeries{}
	second := &PremiumSeries{Data: []PremiumPoint{{Date: "2026-08-28"}}}

	c.Set("gold_premium_1d", first)
	c.Set("gold_premium_1d", second)

	got, ok := c.Get("gold_premium_1d", time.Minute)
	if !ok {
		t.Fatal("Get() missed after overwrite")
	}
	if got != second {
		t.Error("Get() should return the last written value")
	}
}
