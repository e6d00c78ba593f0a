package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// ErrBrokenLink marks a generated link with no page behind it.
var ErrBrokenLink = errors.New("broken link")

// ExtractDetailLinks returns the distinct detail names linked from an index
// page, in document order.
func ExtractDetailLinks(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	prefix := DetailRoute("")
	seen := make(map[string]struct{})
	names := make([]string, 0)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, prefix) {
			return
		}

		name := strings.TrimSuffix(strings.TrimPrefix(href, prefix), "/")
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}

		seen[name] = struct{}{}
		names = append(names, name)
	})

	return names, nil
}

// VerifyLinks checks that every detail link on the generated index points to
// a known route with a page on disk.
func (s *Service) VerifyLinks(ctx context.Context) error {
	f, err := os.Open(s.IndexPath())
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer f.Close()

	names, err := ExtractDetailLinks(f)
	if err != nil {
		return err
	}

	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !s.IsKnown(name) {
			errs = append(errs, fmt.Errorf("%w: %s is not a generated route", ErrBrokenLink, DetailRoute(name)))
			continue
		}
		if _, err := os.Stat(s.DetailPath(name)); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s has no page: %v", ErrBrokenLink, DetailRoute(name), err))
		}
	}

	if len(errs) > 0 {
		log.Errorf("❌ %d of %d links are broken", len(errs), len(names))
		return errors.Join(errs...)
	}

	log.Infof("✅ All %d detail links resolve", len(names))
	return nil
}
