package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CatalogWarmer reloads the cached public catalog.
type CatalogWarmer interface {
	Warmup(ctx context.Context) error
}

// CatalogRefreshTask keeps the catalog cache populated so that the first
// buyer after an expiry does not pay for the reload.
type CatalogRefreshTask struct {
	catalog CatalogWarmer
	spec    string
	timeout time.Duration
	cron    *cron.Cron
}

func NewCatalogRefreshTask(catalog CatalogWarmer, spec string) *CatalogRefreshTask {
	return &CatalogRefreshTask{
		catalog: catalog,
		spec:    spec,
		timeout: 30 * time.Second,
		cron:    cron.New(cron.WithSeconds()),
	}
}

// Start warms the cache once in the background and then on every tick of spec.
func (t *CatalogRefreshTask) Start() error {
	if _, err := t.cron.AddFunc(t.spec, t.refresh); err != nil {
		log.Printf("[CatalogRefreshTask] invalid schedule %q: %v", t.spec, err)
		return err
	}

	go t.refresh()
	t.cron.Start()
	log.Printf("[CatalogRefreshTask] started (%s)", t.spec)
	return nil
}

func (t *CatalogRefreshTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	log.Println("[CatalogRefreshTask] stopped")
}

func (t *CatalogRefreshTask) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	if err := t.catalog.Warmup(ctx); err != nil {
		log.Printf("[CatalogRefreshTask] warmup failed: %v", err)
	}
}
