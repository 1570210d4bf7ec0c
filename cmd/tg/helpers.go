package main

import (
	"fmt"
	"os"

	"github.com/thorne/topograph/internal/config"
	"github.com/thorne/topograph/internal/graph"
	"github.com/thorne/topograph/internal/importer"
	"github.com/thorne/topograph/internal/link"
	"github.com/thorne/topograph/internal/resource"
	"github.com/thorne/topograph/internal/topic"
)

// mustFindRepository locates the repository root from the working directory
// (or TG_ROOT), exiting on failure.
func mustFindRepository() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	if root := os.Getenv("TG_ROOT"); root != "" {
		cwd = root
	}

	repoRoot, err := config.FindRepository(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return repoRoot
}

// mustLoadConfig loads the repository config, exiting on failure.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// dataset holds the three parsed inputs plus per-row parse diagnostics.
type dataset struct {
	Topics  []topic.Topic
	Links   []link.Link
	URLs    []resource.Record
	RowErrs []importer.RowError
}

// loadDataset reads and parses the three flat files. Topics and links are
// required; the pipeline aborts as a unit if either is unreadable. A missing
// urls file is a normal empty state.
func loadDataset(root string, cfg *config.Config) (dataset, error) {
	var ds dataset

	topicsFile, err := os.Open(cfg.TopicsPath(root))
	if err != nil {
		return ds, fmt.Errorf("opening topics: %w", err)
	}
	defer topicsFile.Close()

	linksFile, err := os.Open(cfg.LinksPath(root))
	if err != nil {
		return ds, fmt.Errorf("opening links: %w", err)
	}
	defer linksFile.Close()

	ds.Topics, ds.RowErrs, err = importer.ParseTopicsCSV(topicsFile)
	if err != nil {
		return ds, fmt.Errorf("parsing topics: %w", err)
	}

	links, linkErrs, err := importer.ParseLinksCSV(linksFile)
	if err != nil {
		return ds, fmt.Errorf("parsing links: %w", err)
	}
	ds.Links = links
	ds.RowErrs = append(ds.RowErrs, linkErrs...)

	urlsFile, err := os.Open(cfg.URLsPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return ds, nil
		}
		return ds, fmt.Errorf("opening urls: %w", err)
	}
	defer urlsFile.Close()

	urls, urlErrs, err := importer.ParseURLsCSV(urlsFile)
	if err != nil {
		return ds, fmt.Errorf("parsing urls: %w", err)
	}
	ds.URLs = urls
	ds.RowErrs = append(ds.RowErrs, urlErrs...)

	return ds, nil
}

// buildFromDataset builds the graph from an already-parsed dataset.
func buildFromDataset(ds dataset) (*graph.Graph, []graph.Anomaly) {
	return graph.Build(ds.Topics, ds.Links, resource.BuildIndex(ds.URLs))
}

// loadGraphFromDocument builds the graph from a combined JSON document,
// skipping edge inference. The urls file still supplies resource records.
func loadGraphFromDocument(root string, cfg *config.Config, path string) (*graph.Graph, []graph.Anomaly, []importer.RowError) {
	f, err := os.Open(path)
	if err != nil {
		exitWithError(ExitDataError, "opening document: %v", err)
	}
	defer f.Close()

	doc, err := importer.ParseDocument(f)
	if err != nil {
		exitWithError(ExitDataError, "parsing document: %v", err)
	}

	var (
		urls    []resource.Record
		rowErrs []importer.RowError
	)
	urlsFile, err := os.Open(cfg.URLsPath(root))
	if err == nil {
		defer urlsFile.Close()
		urls, rowErrs, err = importer.ParseURLsCSV(urlsFile)
		if err != nil {
			exitWithError(ExitDataError, "parsing urls: %v", err)
		}
	} else if !os.IsNotExist(err) {
		exitWithError(ExitDataError, "opening urls: %v", err)
	}

	g, anomalies := graph.FromDocument(doc, resource.BuildIndex(urls))
	return g, anomalies, rowErrs
}

// loadGraph runs the whole pipeline: read the flat files, build the graph,
// and return it with all diagnostics. Exits on pipeline-fatal conditions.
func loadGraph(root string, cfg *config.Config) (*graph.Graph, []graph.Anomaly, []importer.RowError) {
	ds, err := loadDataset(root, cfg)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	g, anomalies := buildFromDataset(ds)
	return g, anomalies, ds.RowErrs
}
