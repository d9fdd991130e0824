// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes computed statistics over a read-only HTTP
// API. Results are computed once at startup; handlers only filter and
// serialize them.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/antigenomics/tcrdb-stats/pkg/types"
)

const defaultMaxRecords = 100

// Results holds everything the API serves, precomputed by the caller.
type Results struct {
	Records     []types.Record          `json:"-"`
	Snapshots   []types.Snapshot        `json:"-"`
	Species     []types.GroupCount      `json:"species"`
	Chains      []types.GroupCount      `json:"chains"`
	MHCClasses  []types.GroupCount      `json:"mhc_classes"`
	TopEpitopes []types.EpitopeCountRow `json:"top_epitopes"`
}

// New builds the gin engine with all routes registered.
func New(results Results, cfg types.ServerConfig) *gin.Engine {
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": len(results.Records)})
	})

	r.GET("/api/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, results)
	})

	r.GET("/api/annual", func(c *gin.Context) {
		chain := c.Query("chain")
		if chain == "" {
			c.JSON(http.StatusOK, results.Snapshots)
			return
		}
		if !validChain(chain) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chain must be one of TRA, TRB, paired"})
			return
		}
		filtered := make([]types.Snapshot, 0, len(results.Snapshots))
		for _, s := range results.Snapshots {
			if string(s.Chain) == chain {
				filtered = append(filtered, s)
			}
		}
		c.JSON(http.StatusOK, filtered)
	})

	r.GET("/api/records", func(c *gin.Context) {
		chain := c.Query("chain")
		if chain != "" && !validChain(chain) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chain must be one of TRA, TRB, paired"})
			return
		}
		epitope := c.Query("epitope")
		species := c.Query("species")

		limit := maxRecords
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			if n < limit {
				limit = n
			}
		}

		matched := make([]types.Record, 0, limit)
		for _, rec := range results.Records {
			if epitope != "" && rec.Epitope != epitope {
				continue
			}
			if species != "" && rec.Species != species {
				continue
			}
			if chain != "" && string(rec.Chain()) != chain {
				continue
			}
			matched = append(matched, rec)
			if len(matched) >= limit {
				break
			}
		}
		c.JSON(http.StatusOK, matched)
	})

	return r
}

func validChain(chain string) bool {
	for _, c := range types.ChainCategories {
		if string(c) == chain {
			return true
		}
	}
	return false
}
