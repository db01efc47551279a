package main

import (
	"github.com/spf13/cobra"

	"egoroff.spb.ru/pkg/sitemap"
)

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Print sitemap.xml for the configured site map",
	RunE: func(cmd *cobra.Command, _ []string) error {
		g, cfg, err := buildGraph()
		if err != nil {
			return err
		}
		docs := sitemap.Documents(g, cfg.SiteURL, cfg.SitemapDocuments)
		data, err := sitemap.Marshal(sitemap.FromGraph(g, cfg.SiteURL, docs...))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
