package orchestrator

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paper-app/backend/internal/domain"
)

type fakeSiteRepo struct {
	sites []domain.Site
	err   error
}

func (f *fakeSiteRepo) ListHarvestable(ctx context.Context) ([]domain.Site, error) {
	return f.sites, f.err
}

type recordingDriver struct {
	mu  sync.Mutex
	ran []int32
}

func (d *recordingDriver) Run(ctx context.Context, site domain.Site) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ran = append(d.ran, site.SiteID)
}

func TestRunAllDrivesEverySite(t *testing.T) {
	repo := &fakeSiteRepo{sites: []domain.Site{{SiteID: 1}, {SiteID: 2}, {SiteID: 3}}}
	driver := &recordingDriver{}
	orch := New(repo, driver)

	err := orch.RunAll(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []int32{1, 2, 3}, driver.ran)
}

func TestRunAllPropagatesListError(t *testing.T) {
	boom := assert.AnError
	repo := &fakeSiteRepo{err: boom}
	driver := &recordingDriver{}
	orch := New(repo, driver)

	err := orch.RunAll(context.Background())
	assert.ErrorIs(t, err, boom)
}
