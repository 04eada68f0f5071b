package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"storefront/assembly/internal/assembly"
	"storefront/assembly/internal/client"
	"storefront/assembly/internal/domain/task"
	"storefront/assembly/internal/queue"
	"storefront/assembly/internal/repository"
	"storefront/assembly/internal/state"
)

// Service runs the sync pipeline: crawl category listings, enqueue one sync
// task per discovered product, and process tasks by rebuilding and
// persisting the assembly trees of every SKU the product carries.
type Service struct {
	repository   repository.TreeRepository
	client       client.StorefrontClient
	queue        queue.Queue
	stateManager state.StateManager
	treeCache    state.TreeCache
	classify     assembly.Classifier

	categories      []string
	minSaveInterval int
	groupName       string
	minIdleTime     time.Duration
}

func NewService(
	repository repository.TreeRepository,
	client client.StorefrontClient,
	queue queue.Queue,
	stateManager state.StateManager,
	treeCache state.TreeCache,
	classify assembly.Classifier,
	categories []string,
	minSaveInterval int,
	groupName string,
	minIdleTime int,
) *Service {
	return &Service{
		repository:      repository,
		client:          client,
		queue:           queue,
		stateManager:    stateManager,
		treeCache:       treeCache,
		classify:        classify,
		categories:      categories,
		minSaveInterval: minSaveInterval,
		groupName:       groupName,
		minIdleTime:     time.Duration(minIdleTime) * time.Second,
	}
}

// SyncAll walks every configured category listing and enqueues a
// ProductSyncTask per discovered product. Crawl progress is checkpointed so
// a restart resumes from the last saved page.
func (s *Service) SyncAll(ctx context.Context) error {
	errGroup := new(errgroup.Group)

	for _, category := range s.categories {
		errGroup.Go(func() error {
			lastSyncedPage, err := s.stateManager.GetLastSyncedPage(ctx, category)
			if err != nil {
				log.Errorf("Failed to get last synced page: %v", err)
				return err
			}

			startPage := lastSyncedPage + 1
			if lastSyncedPage > 0 {
				log.Infof("🔄 Continue from page %d for category %s", startPage, category)
			}

			log.Infof("🔄 Crawling category: %s", category)

			pageNumber := startPage
			totalEnqueued := 0
			for {
				page, err := s.client.GetListingPage(ctx, category, pageNumber)
				if err != nil {
					log.Errorf("❌ Failed to get listing page %d for %s: %v", pageNumber, category, err)
					return err
				}

				for _, item := range page.Items {
					_, err := s.queue.AddTask(ctx, &task.ProductSyncTask{
						ProductID: item.ProductID,
						Category:  category,
					})
					if err != nil {
						log.Errorf("❌ Failed to enqueue product %s: %v", item.ProductID, err)
						return err
					}
					totalEnqueued++
				}

				if s.minSaveInterval > 0 && pageNumber%s.minSaveInterval == 0 {
					s.stateManager.SetLastSyncedPage(ctx, category, pageNumber)
				}

				if pageNumber >= page.TotalPages {
					s.stateManager.SetLastSyncedPage(ctx, category, page.TotalPages)
					break
				}
				pageNumber++
			}

			log.Infof("✅ Completed category %s: %d products enqueued", category, totalEnqueued)
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return err
	}

	log.Infof("✅ Completed crawl of all categories")
	return nil
}

func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	// Run workers for both regular and retry tasks
	s.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamPrefix+"ProductSyncTask", "main")
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), queue.StreamPrefix+"SyncRetryTask", "retry")

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%d", workerType, time.Now().UnixNano())
				claimedMessages, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := s.processMessage(ctx, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	// Regular workers for this stream
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
					if err != nil {
						log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
						continue
					}

					if msg != nil {
						if err := s.processMessage(ctx, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

func (s *Service) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	var streamName string
	switch taskType {
	case "ProductSyncTask":
		streamName = queue.StreamPrefix + "ProductSyncTask"
		syncTask, err := task.UnmarshalTask[*task.ProductSyncTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal product sync task data: %w", err)
		}

		if err := s.syncProduct(ctx, syncTask.ProductID, syncTask.Category); err != nil {
			// Move to the retry queue instead of failing the stream
			retryTask := &task.SyncRetryTask{
				ProductID:  syncTask.ProductID,
				Category:   syncTask.Category,
				RetryCount: 0,
				Error:      err.Error(),
			}

			if _, addErr := s.queue.AddTask(ctx, retryTask); addErr != nil {
				log.Errorf("❌ Failed to add retry task for product %s: %v", syncTask.ProductID, addErr)
			} else {
				log.Warnf("🔄 Added product %s to retry queue due to error: %v", syncTask.ProductID, err)
			}
		}

	case "SyncRetryTask":
		streamName = queue.StreamPrefix + "SyncRetryTask"
		retryTask, err := task.UnmarshalTask[*task.SyncRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal retry task data: %w", err)
		}

		if err := s.retrySync(ctx, retryTask); err != nil {
			return fmt.Errorf("failed to retry product sync: %w", err)
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

// syncProduct fetches one product and rebuilds the assembly tree of every
// SKU that carries assembly options. SKUs without options yield no tree and
// are skipped; that is absence, not an error.
func (s *Service) syncProduct(ctx context.Context, productID, category string) error {
	product, err := s.client.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	// Drop stale trees first: a SKU may have lost its options since the
	// last sync.
	if err := s.repository.DeleteTreesForProduct(ctx, productID); err != nil {
		return err
	}

	built := 0
	for i := range product.Items {
		sku := &product.Items[i]
		tree := assembly.BuildTree(product, sku, s.classify)
		if tree == nil {
			if err := s.treeCache.Invalidate(ctx, sku.ItemID); err != nil {
				log.Warnf("⚠️ Failed to invalidate cached tree for sku %s: %v", sku.ItemID, err)
			}
			continue
		}

		if err := s.repository.SaveTree(ctx, productID, sku.ItemID, tree); err != nil {
			return err
		}
		if err := s.treeCache.Put(ctx, sku.ItemID, tree); err != nil {
			log.Warnf("⚠️ Failed to cache tree for sku %s: %v", sku.ItemID, err)
		}
		built++
	}

	log.Infof("✅ Synced product %s (%s): %d of %d SKUs customizable",
		productID, category, built, len(product.Items))
	return nil
}

func (s *Service) retrySync(ctx context.Context, retryTask *task.SyncRetryTask) error {
	retryTask.RetryCount++

	log.Infof("🔄 Retrying product %s (attempt %d)", retryTask.ProductID, retryTask.RetryCount)

	if err := s.syncProduct(ctx, retryTask.ProductID, retryTask.Category); err != nil {
		// Re-queue with incremented count - retry indefinitely
		newRetryTask := &task.SyncRetryTask{
			ProductID:  retryTask.ProductID,
			Category:   retryTask.Category,
			RetryCount: retryTask.RetryCount,
			Error:      err.Error(),
		}

		if _, addErr := s.queue.AddTask(ctx, newRetryTask); addErr != nil {
			log.Errorf("❌ Failed to re-add retry task for product %s: %v", retryTask.ProductID, addErr)
			return addErr
		}

		log.Warnf("🔄 Product %s failed again, will retry (attempt %d): %v",
			retryTask.ProductID, retryTask.RetryCount, err)
		return nil
	}

	log.Infof("✅ Successfully recovered product %s after %d attempts",
		retryTask.ProductID, retryTask.RetryCount)
	return nil
}
