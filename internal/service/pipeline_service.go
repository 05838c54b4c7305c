package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/internal/downloader"
	"github.com/appdotbuilder/tele-vid-downloader/internal/extractor"
	"github.com/appdotbuilder/tele-vid-downloader/internal/model"
	"github.com/appdotbuilder/tele-vid-downloader/internal/repository"
	"github.com/appdotbuilder/tele-vid-downloader/internal/telegram"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"
	"github.com/appdotbuilder/tele-vid-downloader/pkg/cache"
)

// PipelineService executes the retrieval-dispatch pipeline for a single video
// link: metadata fetch, materialization, delivery dispatch, cleanup. The record
// is updated at every stage boundary so progress is observable by polling. A
// stage failure is converted into a persisted failed status plus error message;
// it never escapes Process as an error.
type PipelineService struct {
	linkRepo    *repository.VideoLinkRepository
	linkService *LinkService
	botService  *BotService
	extractor   *extractor.Client
	downloader  *downloader.Downloader
	telegram    *telegram.Client
	cache       cache.MetadataCache
	chatID      int64
	maxFileSize int64
}

// NewPipelineService creates a pipeline service
func NewPipelineService(
	linkService *LinkService,
	botService *BotService,
	extractorClient *extractor.Client,
	dl *downloader.Downloader,
	telegramClient *telegram.Client,
	metadataCache cache.MetadataCache,
	chatID int64,
	maxFileSize int64,
) *PipelineService {
	return &PipelineService{
		linkRepo:    repository.NewVideoLinkRepository(),
		linkService: linkService,
		botService:  botService,
		extractor:   extractorClient,
		downloader:  dl,
		telegram:    telegramClient,
		cache:       metadataCache,
		chatID:      chatID,
		maxFileSize: maxFileSize,
	}
}

// Process runs the pipeline for one link. The returned error covers only
// conditions that prevented the pipeline from running at all (unknown link,
// lost claim, storage failure); stage failures end in a persisted failed
// status and a nil error. The caller must not dispatch the same link
// concurrently; the conditional claim makes a second dispatch lose cleanly.
func (s *PipelineService) Process(ctx context.Context, linkID uint) (*model.VideoLink, error) {
	link, err := s.linkService.GetByID(linkID)
	if err != nil {
		return nil, err
	}

	rows, err := s.linkRepo.ClaimProcessing(linkID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, &apperrors.ConflictError{
			Message: fmt.Sprintf("link %d is not pending (status %s)", linkID, link.Status),
		}
	}
	log.Printf("Pipeline: link %d claimed for processing", linkID)

	// Stage 1: metadata fetch
	meta, err := s.fetchMetadata(ctx, link.URL)
	if err != nil {
		return s.fail(linkID, "metadata fetch failed: "+err.Error())
	}

	metaUpdate := map[string]interface{}{"title": meta.Title}
	if meta.ThumbnailURL != "" {
		metaUpdate["thumbnail_url"] = meta.ThumbnailURL
	}
	if meta.Duration > 0 {
		metaUpdate["duration"] = meta.Duration
	}
	if _, err := s.linkService.ApplyUpdate(linkID, metaUpdate); err != nil {
		return nil, err
	}
	log.Printf("Pipeline: link %d metadata resolved (%s)", linkID, meta.Title)

	// Stage 2: materialization
	result, err := s.downloader.Download(ctx, meta.DownloadURL, materializeName(linkID, meta.DownloadURL))
	if err != nil {
		return s.fail(linkID, "download failed: "+err.Error())
	}

	now := time.Now()
	_, err = s.linkService.ApplyUpdate(linkID, map[string]interface{}{
		"status":        model.StatusDownloaded,
		"file_size":     result.FileSize,
		"downloaded_at": now,
	})
	if err != nil {
		s.cleanup(linkID, result.FilePath)
		return nil, err
	}
	log.Printf("Pipeline: link %d downloaded %d bytes", linkID, result.FileSize)

	// Stage 3: delivery dispatch
	uploaded, dispatchErr := s.dispatch(link.Platform, result)
	if dispatchErr != nil {
		failed, err := s.fail(linkID, dispatchErr.Error())
		s.cleanup(linkID, result.FilePath)
		return failed, err
	}

	uploadedAt := time.Now()
	update := map[string]interface{}{
		"status":           model.StatusUploaded,
		"telegram_bot_id":  uploaded.botID,
		"telegram_file_id": uploaded.result.FileID,
		"uploaded_at":      uploadedAt,
	}
	if uploaded.result.MessageLink != "" {
		update["telegram_message_link"] = uploaded.result.MessageLink
	}
	final, err := s.linkService.ApplyUpdate(linkID, update)
	if err != nil {
		s.cleanup(linkID, result.FilePath)
		return nil, err
	}
	log.Printf("Pipeline: link %d uploaded (file_id %s)", linkID, uploaded.result.FileID)

	// Stage 4: cleanup
	s.cleanup(linkID, result.FilePath)

	return final, nil
}

// fetchMetadata consults the cache before calling the extraction service
func (s *PipelineService) fetchMetadata(ctx context.Context, sourceURL string) (*extractor.Metadata, error) {
	if s.cache != nil {
		if meta, err := s.cache.Get(ctx, sourceURL); err == nil && meta != nil {
			log.Printf("Pipeline: metadata cache hit for %s", sourceURL)
			return meta, nil
		}
	}

	meta, err := s.extractor.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sourceURL, meta); err != nil {
			log.Printf("Pipeline: failed to cache metadata for %s: %v", sourceURL, err)
		}
	}
	return meta, nil
}

type dispatchResult struct {
	botID  uint
	result *telegram.SendResult
}

// dispatch resolves the delivery bot for the platform, enforces the payload
// cap, and uploads the file.
func (s *PipelineService) dispatch(platform model.Platform, file *downloader.Result) (*dispatchResult, error) {
	botID, err := s.botService.Resolve(platform)
	if err != nil {
		return nil, err
	}
	if botID == nil {
		return nil, &apperrors.DependencyError{
			Message: fmt.Sprintf("no delivery bot available for platform %s", platform),
		}
	}

	bot, err := s.botService.GetByID(*botID)
	if err != nil {
		return nil, err
	}
	if !bot.IsActive {
		return nil, &apperrors.DependencyError{Message: fmt.Sprintf("bot %s is not active", bot.Name)}
	}

	info, err := os.Stat(file.FilePath)
	if err != nil {
		return nil, &apperrors.IOError{Message: "materialized file is missing", Err: err}
	}
	if info.Size() > s.maxFileSize {
		return nil, &apperrors.ResourceLimitError{
			Message: fmt.Sprintf("file size %d exceeds the delivery limit of %d bytes", info.Size(), s.maxFileSize),
		}
	}

	sent, err := s.telegram.SendFile(bot.Token, s.chatID, file.FilePath)
	if err != nil {
		return nil, err
	}
	return &dispatchResult{botID: *botID, result: sent}, nil
}

// fail persists the failed terminal state with a message naming the failing
// stage. Metadata captured before the failure stays on the record.
func (s *PipelineService) fail(linkID uint, message string) (*model.VideoLink, error) {
	log.Printf("Pipeline: link %d failed: %s", linkID, message)
	return s.linkService.ApplyUpdate(linkID, map[string]interface{}{
		"status":        model.StatusFailed,
		"error_message": message,
	})
}

// cleanup deletes the materialized file; an already-deleted file is fine
func (s *PipelineService) cleanup(linkID uint, filePath string) {
	if err := s.downloader.Cleanup(filePath); err != nil {
		log.Printf("Pipeline: link %d cleanup failed: %v", linkID, err)
	}
}

// materializeName builds a per-run local filename from the download URL
func materializeName(linkID uint, downloadURL string) string {
	base := "video.mp4"
	if parsed, err := url.Parse(downloadURL); err == nil {
		if b := path.Base(parsed.Path); b != "" && b != "/" && b != "." {
			base = b
		}
	}
	return fmt.Sprintf("%d_%d_%s", linkID, time.Now().UnixNano(), base)
}
