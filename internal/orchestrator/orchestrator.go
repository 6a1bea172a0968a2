// Package orchestrator implements C7: load the harvestable sites and
// run one Driver per site concurrently, grounded on the Rust
// harvester's main.rs (Arc<Mutex<Client>> + one tokio::spawn per site
// + join_all), adapted to errgroup.
package orchestrator

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/paper-app/backend/internal/domain"
)

// Driver is the subset of harvest.Driver the orchestrator depends on.
type Driver interface {
	Run(ctx context.Context, site domain.Site)
}

// Orchestrator fans a harvest run out across every harvestable site.
type Orchestrator struct {
	sites  domain.SiteRepository
	driver Driver
}

func New(sites domain.SiteRepository, driver Driver) *Orchestrator {
	return &Orchestrator{sites: sites, driver: driver}
}

// RunAll lists every harvestable site and runs one goroutine per site
// to completion. A single site's driver never returns an error — it
// logs and stops on its own — so RunAll itself only fails if listing
// the sites fails.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	sites, err := o.sites.ListHarvestable(ctx)
	if err != nil {
		return err
	}
	log.Printf("orchestrator: %d harvestable sites", len(sites))

	group, gctx := errgroup.WithContext(ctx)
	for _, site := range sites {
		site := site
		group.Go(func() error {
			o.driver.Run(gctx, site)
			return nil
		})
	}
	return group.Wait()
}
