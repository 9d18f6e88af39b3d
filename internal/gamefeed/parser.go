package gamefeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

var (
	// ErrNoJSON indica resposta sem nenhum objeto ou array JSON embutido
	ErrNoJSON = errors.New("no JSON object or array found in response")
)

// ExtractJSON recorta o primeiro objeto ou array JSON embutido em texto
// livre do provedor de IA. A resposta costuma vir cercada de prosa ou cercas
// de markdown; o recorte é best-effort: do primeiro '{' ao último '}' (ou
// '[' .. ']'), preferindo o array quando ele começa antes do objeto.
// Nunca entra em pânico; resposta irrecuperável vira erro pro chamador
// decidir o fallback.
func ExtractJSON(text string) ([]byte, error) {
	objStart := strings.Index(text, "{")
	objEnd := strings.LastIndex(text, "}")
	arrStart := strings.Index(text, "[")
	arrEnd := strings.LastIndex(text, "]")

	hasObj := objStart != -1 && objEnd > objStart
	hasArr := arrStart != -1 && arrEnd > arrStart
	if !hasObj && !hasArr {
		return nil, ErrNoJSON
	}

	var raw string
	if hasArr && (!hasObj || arrStart < objStart) {
		raw = text[arrStart : arrEnd+1]
	} else {
		raw = text[objStart : objEnd+1]
	}

	b := []byte(raw)
	if !json.Valid(b) {
		return nil, fmt.Errorf("extracted segment is not valid JSON")
	}
	return b, nil
}

// DecodeGames desserializa um array de jogos, descartando registros sem id
// (o feed é não confiável; um registro malformado não aborta o lote inteiro).
// Retorna também quantos registros foram descartados.
func DecodeGames(raw []byte) (games []events.Game, dropped int, err error) {
	var all []events.Game
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, 0, fmt.Errorf("decode games: %w", err)
	}
	games = all[:0]
	for _, g := range all {
		if g.ID == "" {
			dropped++
			continue
		}
		games = append(games, g)
	}
	return games, dropped, nil
}
