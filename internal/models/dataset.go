package models

// Names of the three tables every bundle must carry.
const (
	FieldLigandActivities = "ligand_activities"
	FieldLigandReceptor   = "p_ligand_receptor_network"
	FieldLigandTarget     = "p_ligand_target_network"
)

// InteractionBundle holds the inference results for one source→target pair.
type InteractionBundle struct {
	Key              PairKey            `json:"key"`
	LigandActivities []LigandActivity   `json:"ligand_activities"`
	LigandReceptor   *InteractionMatrix `json:"p_ligand_receptor_network"`
	LigandTarget     *InteractionMatrix `json:"p_ligand_target_network"`
}

// LigandActivity is one row of the ligand activity ranking.
type LigandActivity struct {
	TestLigand    string  `json:"test_ligand"`
	AUROC         float64 `json:"auroc"`
	AUPR          float64 `json:"aupr"`
	AUPRCorrected float64 `json:"aupr_corrected"`
	Pearson       float64 `json:"pearson"`
}
