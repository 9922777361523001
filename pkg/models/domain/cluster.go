package domain

// ClusterAssignment maps one sample to the cluster it was assigned to.
type ClusterAssignment struct {
	SampleName   string `json:"sample_name"`
	ClusterID    int    `json:"cluster_id"`
	ClusterLabel string `json:"cluster_label,omitempty"`
}

// ClusterStatistics describes one cluster. Size always equals len(Members),
// and Mean/Std/Min/Max share the same variable key set.
type ClusterStatistics struct {
	Size    int                `json:"size"`
	Members []string           `json:"members"`
	Mean    map[string]float64 `json:"mean"`
	Std     map[string]float64 `json:"std"`
	Min     map[string]float64 `json:"min"`
	Max     map[string]float64 `json:"max"`
}
