package metrics

// Admission outcomes reported on RecentsAdmissionsTotal.
const (
	AdmissionAdded    = "added"
	AdmissionMoved    = "moved"
	AdmissionFiltered = "filtered"
	AdmissionDisabled = "disabled"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, result := range []string{AdmissionAdded, AdmissionMoved, AdmissionFiltered, AdmissionDisabled} {
		RecentsAdmissionsTotal.WithLabelValues(result)
	}

	for _, status := range []string{"success", "skipped", "error"} {
		ShellNotificationsTotal.WithLabelValues(status)
	}

	for _, status := range []string{"success", "error"} {
		PlaylistMaterializationsTotal.WithLabelValues(status)
	}

	for _, result := range []string{"recovered", "retried", "failed"} {
		FilesystemRetriesTotal.WithLabelValues("read", result)
	}

	for _, op := range []string{"initialize_schema", "get_setting", "set_setting", "delete_setting", "list_settings"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}
}
