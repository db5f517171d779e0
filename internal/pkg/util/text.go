package util

import (
	log "log/slog"
	"strings"
	"sync"

	"github.com/liuzl/gocc"
)

var (
	t2sOnce sync.Once
	t2s     *gocc.OpenCC
)

// ToSimplified 繁体转简体，转换器不可用时原样返回
func ToSimplified(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	t2sOnce.Do(func() {
		var err error
		t2s, err = gocc.New("t2s")
		if err != nil {
			log.Warn("init opencc t2s failed", "err", err)
		}
	})
	if t2s == nil {
		return s
	}
	out, err := t2s.Convert(s)
	if err != nil {
		return s
	}
	return out
}
