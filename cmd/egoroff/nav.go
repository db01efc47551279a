package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Query the site navigation graph",
}

var navPathCmd = &cobra.Command{
	Use:   "path <section-id>",
	Short: "Print the canonical path of a section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := buildGraph()
		if err != nil {
			return err
		}
		fp := g.FullPath(args[0])
		if fp == "" {
			return fmt.Errorf("section '%s' not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), fp)
		return nil
	},
}

var navBreadcrumbsCmd = &cobra.Command{
	Use:   "breadcrumbs <uri>",
	Short: "Print the breadcrumb trail and current section of a URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := buildGraph()
		if err != nil {
			return err
		}
		trail, current, ok := g.Breadcrumbs(args[0])
		if !ok {
			return fmt.Errorf("site map has no root section")
		}
		ids := make([]string, 0, len(trail))
		for _, s := range trail {
			ids = append(ids, s.ID)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "trail:   %s\ncurrent: %s\n", strings.Join(ids, " > "), current)
		return nil
	},
}

var navTitleCmd = &cobra.Command{
	Use:   "title <uri>",
	Short: "Print the page title path of a URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, _, err := buildGraph()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), g.TitlePath(args[0]))
		return nil
	},
}

func init() {
	navCmd.AddCommand(navPathCmd)
	navCmd.AddCommand(navBreadcrumbsCmd)
	navCmd.AddCommand(navTitleCmd)
}
