package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/monster-js/documentation/internal/server"
	"github.com/monster-js/documentation/internal/site"
)

const debounceDuration = 500 * time.Millisecond

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds it on changes",
	Long: `The serve command performs an initial build of the site, then starts a
local web server on the output directory. It watches the docs and static
directories and the site file, and rebuilds the site after every change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger.Info("Performing initial build...")
		if _, err := runBuild(ctx); err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}
		// Changing baseUrl requires restarting the server.
		cfg, err := site.Load(appConfig.SiteFile)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		watchPaths(watcher, appConfig.DocsDir, appConfig.StaticDir)
		if _, err := os.Stat(appConfig.SiteFile); err == nil {
			if err := watcher.Add(appConfig.SiteFile); err != nil {
				logger.Warn("Failed to watch site file", "path", appConfig.SiteFile, "error", err)
			}
		}

		go watch(ctx, watcher)

		handler := server.NewHandler(appConfig.OutputDir, cfg.BaseURL, logger)
		logger.Info("Site available", "url", fmt.Sprintf("http://localhost:%d%s", appConfig.Port, cfg.BaseURL))
		return server.Serve(ctx, fmt.Sprintf(":%d", appConfig.Port), handler, logger)
	},
}

// watchPaths adds every directory below the given roots. fsnotify does not
// watch recursively.
func watchPaths(watcher *fsnotify.Watcher, roots ...string) {
	for _, root := range roots {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			logger.Info("Directory not found, not watching", "dir", root)
			continue
		}

		logger.Debug("Watching directory tree", "dir", root)
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				logger.Warn("Error walking directory", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					logger.Warn("Failed to watch directory", "path", path, "error", err)
				}
			}
			return nil
		})
		if err != nil {
			logger.Warn("Error during initial directory walk", "dir", root, "error", err)
		}
	}
}

// watch rebuilds the site once changes settle for debounceDuration.
func watch(ctx context.Context, watcher *fsnotify.Watcher) {
	var (
		mu         sync.Mutex
		buildTimer *time.Timer
	)
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()
		logger.Info("Rebuilding site due to changes...")
		if _, err := runBuild(ctx); err != nil {
			logger.Error("Error during rebuild", "error", err)
			return
		}
		logger.Info("Site rebuilt successfully")
	}

	for {
		select {
		case <-ctx.Done():
			if buildTimer != nil {
				buildTimer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Change detected", "path", event.Name, "op", event.Op.String())

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("Error adding new directory to watcher", "path", event.Name, "error", err)
				}
			}

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, rebuild)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error", "error", err)
		}
	}
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntP("port", "p", 3000, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
