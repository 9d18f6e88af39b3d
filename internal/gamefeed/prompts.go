package gamefeed

import (
	"encoding/json"
	"fmt"

	"github.com/radieske/game-day-dashboard-poc/pkg/contracts/events"
)

// Prompts enviados ao provedor generativo. O conteúdo retornado é tratado
// como feed externo não confiável: tudo passa pelo parser best-effort.

const promptGamesOfTheDay = `
Sua tarefa principal é atuar como um agregador de dados esportivos. Forneça uma lista o mais completa possível com os jogos do dia de hoje de uma vasta gama de esportes populares (futebol, basquete, tênis, vôlei, e-sports, MMA, hóquei, etc.), incluindo ligas principais e também as menores.

Para cada jogo, sintetize informações de múltiplos sites de apostas esportivas e análise para calcular uma probabilidade de resultado.

Forneça as seguintes informações em formato JSON:
- "id": um identificador único para o jogo (ex: 'futebol-brasileirao-FLAvsCOR-20241026')
- "sport": O nome do esporte (ex: 'Futebol', 'Basquete', 'Tênis')
- "date": A data do jogo no formato AAAA-MM-DD.
- "homeTeam" / "awayTeam": Nomes dos times/jogadores.
- "homeLogo" / "awayLogo": URL direta para um arquivo de imagem do logo (.png, .svg, .webp); se não encontrar, use null. NÃO INVENTE URLs.
- "time": Se 'SCHEDULED', o horário (ex: '21:30'). Se 'LIVE', o status atual (ex: '45+2'). Se 'FINISHED', 'Encerrado'.
- "league": Nome do campeonato ou torneio.
- "homeScore" / "awayScore": Placares (null se o jogo não começou).
- "status": 'SCHEDULED', 'LIVE', 'FINISHED', ou 'POSTPONED'.
- "elapsedTime": Apenas para futebol, o tempo em minutos. Para outros, null.
- "homeStats" / "awayStats": Objetos de estatísticas ("fouls", "yellowCards", "redCards", "possession", "shotsOnGoal", "totalShots", "corners", "offsides").
- "prediction": { "homeWinPercentage": number, "awayWinPercentage": number, "drawPercentage": number }. A soma deve ser próxima de 100. Se o esporte não permite empate (ex: Tênis), "drawPercentage" deve ser 0 ou null.
- "odds": { "homeWin": number, "awayWin": number, "draw": number } com multiplicadores de pagamento (null onde não se aplica).
- "whereToWatch": array de objetos com "name" e "url" (null se não for online). Array vazio se não houver informação.

Se uma informação não estiver disponível, use null.
A resposta DEVE ser um array JSON puro, começando com '[' e terminando com ']'. Não inclua texto ou formatação markdown.
`

func promptTeamHistory(team string) string {
	return fmt.Sprintf(`
Forneça o histórico de jogos do time "%s" do último mês.
A resposta DEVE ser um array JSON puro de objetos, onde cada objeto representa um jogo e contém os campos:
"date", "homeTeam", "homeLogo", "awayTeam", "awayLogo", "homeScore", "awayScore", "league".
Para os logos, use apenas link direto para arquivo de imagem; se não encontrar, null.
Se não houver jogos no último mês, retorne um array vazio [].
A resposta DEVE começar com '[' e terminar com ']'. Não inclua nenhum outro texto.
`, team)
}

func promptHeadToHead(home, away string) string {
	return fmt.Sprintf(`
Forneça o histórico dos últimos 10 confrontos diretos (Head-to-Head) entre "%s" e "%s".
A resposta DEVE ser um array JSON puro de objetos, ordenado do mais recente para o mais antigo, com os campos:
"date", "homeTeam", "homeLogo", "awayTeam", "awayLogo", "homeScore", "awayScore", "league".
Para os logos, use apenas link direto para arquivo de imagem; se não encontrar, null.
Se não houver histórico de confrontos, retorne um array vazio [].
A resposta DEVE começar com '[' e terminar com ']'. Não inclua nenhum outro texto.
`, home, away)
}

func promptAnalysis(game events.Game, depth AnalysisDepth) string {
	instructions := "Sua análise deve ser concisa, baseada principalmente nos dados fornecidos e em conhecimentos gerais. Não precisa buscar fontes externas."
	if depth == AnalysisDeep {
		instructions = "Sua análise deve ser PROFUNDA. Você DEVE buscar informações externas e em tempo real (notícias de lesões, momento da equipe, táticas) para enriquecer sua análise. É OBRIGATÓRIO listar as URLs das fontes que você usou."
	}

	gameJSON, _ := json.MarshalIndent(game, "", "  ")
	return fmt.Sprintf(`
Você é um analista esportivo de IA de elite. Sua tarefa é realizar uma análise detalhada do jogo abaixo e retornar sua conclusão em um formato JSON ESTRITO.

Dados Base do Jogo:
%s

Instruções de Análise:
%s

A resposta DEVE ser um único objeto JSON com a estrutura:
{
  "predictedWinner": "Nome do Time Vencedor ou 'Empate'",
  "confidence": um número de 0 a 100,
  "probabilities": { "home": number, "away": number, "draw": number },
  "keyFactors": ["fator 1", "fator 2", "fator 3"],
  "detailedAnalysis": "parágrafo com a análise completa",
  "sources": ["URL da fonte 1", "URL da fonte 2"]
}

Não inclua nenhum texto, explicação ou markdown fora do objeto JSON. A resposta deve começar com '{' e terminar com '}'.
`, gameJSON, instructions)
}
