package storage

import "context"

// Store é a porta de persistência chave/valor usada pelo ledger e pelo
// histórico de previsões. Os valores fazem round-trip em JSON.
//
// Load devolve (false, nil) quando a chave não existe. Falhas de leitura ou
// escrita nunca derrubam o chamador: o estado em memória segue autoritativo
// para a sessão corrente.
type Store interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}

// Chaves usadas pelos componentes do dashboard
const (
	KeyBettingPrefix     = "betting_data_v1:"   // + userID
	KeyPredictionHistory = "prediction_history" // global
)

// BettingKey monta a chave de persistência do ledger de um usuário
func BettingKey(userID string) string { return KeyBettingPrefix + userID }
