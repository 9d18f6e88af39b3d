package events

// AiAnalysis é a resposta estruturada de uma análise de partida gerada pelo
// provedor de IA. O conteúdo é opaco para o núcleo: apenas repassado.
type AiAnalysis struct {
	PredictedWinner  string                `json:"predictedWinner"`
	Confidence       float64               `json:"confidence"` // 0 a 100
	Probabilities    AnalysisProbabilities `json:"probabilities"`
	KeyFactors       []string              `json:"keyFactors"`
	DetailedAnalysis string                `json:"detailedAnalysis"`
	Sources          []string              `json:"sources"`
}

type AnalysisProbabilities struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
	Draw float64 `json:"draw"`
}
