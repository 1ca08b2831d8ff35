package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Service prunes old announcement audio. Every delivered announcement
// leaves an mp3 behind in the output directory; once the file has been
// uploaded to the station it only matters for debugging, so old ones
// are swept on a timer.
type Service struct {
	outputDir       string
	filePrefix      string
	maxAge          time.Duration
	cleanupInterval time.Duration
	cancel          context.CancelFunc
}

// NewService creates a new cleanup service
func NewService(outputDir, filePrefix string, maxAge, cleanupInterval time.Duration) *Service {
	if filePrefix == "" {
		filePrefix = "ai-host"
	}
	return &Service{
		outputDir:       outputDir,
		filePrefix:      filePrefix,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
	}
}

// Start begins the cleanup service
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Run initial sweep
	s.sweep()

	go func() {
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				log.Println("[DEBUG] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[DEBUG] Cleanup service started (interval: %v, max age: %v)", s.cleanupInterval, s.maxAge)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep removes announcement files older than maxAge
func (s *Service) sweep() {
	if _, err := os.Stat(s.outputDir); os.IsNotExist(err) {
		return
	}

	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		log.Printf("[ERROR] Cleanup read error: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		// Only touch files this service's pipeline produced
		if !strings.HasPrefix(name, s.filePrefix+"-") || !strings.HasSuffix(name, ".mp3") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) <= s.maxAge {
			continue
		}

		path := filepath.Join(s.outputDir, name)
		log.Printf("[DEBUG] Removing old announcement audio: %s", path)
		if err := os.Remove(path); err != nil {
			log.Printf("[ERROR] Failed to remove %s: %v", path, err)
		}
	}
}
