// Package promotions serves the active home-screen banners with presigned
// image URLs.
package promotions

import (
	"context"
	"fmt"

	"github.com/bobadragon/storefront/internal/logging"
	"github.com/bobadragon/storefront/internal/server/repositories/promotions"
)

// URLSigner turns a bucket key into a browser-loadable URL.
type URLSigner interface {
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// Promotion is one banner ready for the client, image URL resolved.
type Promotion struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
}

type Service struct {
	repo   promotions.Repository
	signer URLSigner
	log    logging.Logger
}

func NewService(repo promotions.Repository, signer URLSigner, log logging.Logger) *Service {
	return &Service{repo: repo, signer: signer, log: log}
}

// ListActive returns the active promotions. A banner whose image cannot be
// signed still ships, just without an image URL.
func (s *Service) ListActive(ctx context.Context) ([]Promotion, error) {
	stored, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing promotions: %w", err)
	}

	out := make([]Promotion, 0, len(stored))
	for _, p := range stored {
		promo := Promotion{ID: p.ID, Title: p.Title, Description: p.Description}
		if p.ImageKey != "" {
			url, err := s.signer.PresignedGetURL(ctx, p.ImageKey)
			if err != nil {
				s.log.Warn(ctx, "failed to presign banner", "key", p.ImageKey, "error", err)
			} else {
				promo.ImageURL = url
			}
		}
		out = append(out, promo)
	}
	return out, nil
}
