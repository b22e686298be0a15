package main

import (
	"fmt"

	"github.com/Dhanabal/svnwc/pkg/config"
	"github.com/Dhanabal/svnwc/pkg/editor"
	"github.com/Dhanabal/svnwc/pkg/repository/scpath"
	"github.com/Dhanabal/svnwc/pkg/store"
	"github.com/Dhanabal/svnwc/pkg/wcdb"
)

// sessionOptions carries the flags common to update and switch: where
// the working copy lives on disk, which operation log to replay, and
// the repository identity the session checks itself against.
type sessionOptions struct {
	root            string
	oplogPath       string
	target          string
	reposRoot       string
	reposUUID       string
	switchURL       string
	switchRelPath   string
	depthFlag       string
	stickyDepth     bool
}

// buildSession opens a fresh in-memory metadata store and on-disk
// pristine store rooted at opts.root, the way a real update/switch would
// before the repository starts streaming callbacks at it. Each
// invocation of this command starts from a clean store: the metadata
// store has no persistent backing, so there is nothing to reopen across
// separate process runs.
func buildSession(opts sessionOptions) (*editor.Session, *editor.Driver, *notificationPrinter, error) {
	wcRoot, err := scpath.NewAbsolutePath(opts.root)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid working copy root: %w", err)
	}

	anchor, err := scpath.NewRelativePath("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid anchor: %w", err)
	}

	adminDir := wcRoot.Join(".svnwc")
	pristine, err := store.NewFilePristineStore(adminDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open pristine store: %w", err)
	}

	repoPath, err := scpath.NewRepositoryPath(opts.root)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid repository path: %w", err)
	}
	manager := config.NewManager(repoPath)
	if opts.depthFlag != "" {
		manager.SetCommandLine("update.depth", opts.depthFlag)
		manager.SetCommandLine("update.sticky-depth", boolString(opts.stickyDepth))
	}
	cfg := editor.ConfigFromTyped(config.NewTypedConfig(manager))

	metaStore := wcdb.NewMemStore()
	printer := &notificationPrinter{store: metaStore}
	cb := editor.Callbacks{
		Notify: printer.handle,
	}

	switchReposRoot := ""
	if opts.switchRelPath != "" {
		switchReposRoot = opts.reposRoot
	}

	session, err := editor.NewSession(
		wcRoot,
		anchor,
		opts.target,
		opts.reposRoot,
		opts.reposUUID,
		switchReposRoot,
		opts.switchRelPath,
		cfg,
		cb,
		metaStore,
		pristine,
	)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open session: %w", err)
	}

	return session, editor.NewDriver(session), printer, nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// runReplay loads opts.oplogPath and drives it through driver, returning
// the printer's final tally for the caller to report.
func runReplay(opts sessionOptions) (*notificationPrinter, error) {
	doc, err := loadOperationLog(opts.oplogPath)
	if err != nil {
		return nil, err
	}

	session, driver, printer, err := buildSession(opts)
	if err != nil {
		return nil, err
	}

	if err := replay(driver, doc); err != nil {
		return printer, fmt.Errorf("replay operation log: %w", err)
	}
	_ = session
	return printer, nil
}
