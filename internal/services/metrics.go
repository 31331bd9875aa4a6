package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "speed_submissions_created_total",
		Help: "Number of submissions created.",
	})
	submissionsEdited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "speed_submissions_edited_total",
		Help: "Number of owner edits applied to pending submissions.",
	})
	moderationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "speed_moderation_decisions_total",
		Help: "Moderation decisions applied, by resulting status.",
	}, []string{"status"})
	evidenceEntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "speed_evidence_entries_created_total",
		Help: "Number of evidence entries attached to submissions.",
	})
	duplicateCandidatesFound = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "speed_duplicate_candidates",
		Help:    "Number of potential duplicates returned per detection run.",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})
)
