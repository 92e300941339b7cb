package service

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/afos-pos/internal/catalog"
	"github.com/aaravmahajanofficial/afos-pos/internal/errors"
	"github.com/aaravmahajanofficial/afos-pos/internal/models"
	"github.com/aaravmahajanofficial/afos-pos/internal/session"
)

type ScanService interface {
	Scan(ctx context.Context, s *session.Session, req *models.ScanRequest) (*models.ScanResponse, error)
}

type scanService struct {
	catalog *catalog.Catalog
	carts   CartService

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewScanService resolves scanned codes against the catalog. Without a code
// the scanner picks a product at random from rnd; nil seeds a fresh source.
func NewScanService(c *catalog.Catalog, carts CartService, rnd *rand.Rand) ScanService {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &scanService{catalog: c, carts: carts, rnd: rnd}
}

func (sc *scanService) Scan(ctx context.Context, s *session.Session, req *models.ScanRequest) (*models.ScanResponse, error) {
	p, err := sc.resolve(strings.TrimSpace(req.Code))
	if err != nil {
		return nil, err
	}

	view, err := sc.carts.AddItem(ctx, s, &models.AddItemRequest{ProductID: p.ID})
	if err != nil {
		return nil, err
	}

	if err := lockLive(s); err != nil {
		return nil, err
	}
	product := productView(p, s)
	s.Unlock()

	return &models.ScanResponse{Product: product, Cart: view}, nil
}

func (sc *scanService) resolve(code string) (models.Product, error) {
	if code != "" {
		p, ok := sc.catalog.Get(code)
		if !ok {
			return models.Product{}, errors.NotFoundError("No product matches the scanned code").WithDetail(code)
		}

		return p, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	return sc.catalog.Random(sc.rnd), nil
}
