package esports

import "game-reports/internal/querybuild"

// EarningsLimit caps the player vs team earnings report.
const EarningsLimit = 50

const earningsCTE = `PlayerEarnings AS (
    SELECT primary_game_id, SUM(total_earnings) AS total_player_earnings
    FROM dim_player
    WHERE primary_game_id IS NOT NULL
    GROUP BY primary_game_id
),
TeamEarnings AS (
    SELECT primary_game_id, SUM(total_earnings) AS total_team_earnings
    FROM dim_team
    WHERE primary_game_id IS NOT NULL
    GROUP BY primary_game_id
)`

func playerVsTeamQuery(d querybuild.Dialect) string {
	return `WITH ` + earningsCTE + `
SELECT
    gm.game_name,
    COALESCE(pe.total_player_earnings, 0) AS total_player_earnings,
    COALESCE(te.total_team_earnings, 0) AS total_team_earnings
FROM dim_game gm
LEFT JOIN PlayerEarnings pe ON gm.game_id = pe.primary_game_id
LEFT JOIN TeamEarnings te ON gm.game_id = te.primary_game_id
WHERE COALESCE(pe.total_player_earnings, 0) > 0
   OR COALESCE(te.total_team_earnings, 0) > 0
ORDER BY total_player_earnings DESC, total_team_earnings DESC
` + d.Limit(EarningsLimit)
}

const ecosystemQuery = `WITH
TournamentPrizes AS (
    SELECT game_id, SUM(total_prize_pool) AS total_tournament_prizes
    FROM fact_esports
    GROUP BY game_id
),
` + earningsCTE + `
SELECT
    gm.game_name,
    COALESCE(tp.total_tournament_prizes, 0) AS tournament_prizes,
    COALESCE(pe.total_player_earnings, 0) AS player_earnings,
    COALESCE(te.total_team_earnings, 0) AS team_earnings,
    (
        COALESCE(tp.total_tournament_prizes, 0) +
        COALESCE(pe.total_player_earnings, 0) +
        COALESCE(te.total_team_earnings, 0)
    ) AS total_ecosystem_value
FROM dim_game gm
LEFT JOIN TournamentPrizes tp ON gm.game_id = tp.game_id
LEFT JOIN PlayerEarnings pe ON gm.game_id = pe.primary_game_id
LEFT JOIN TeamEarnings te ON gm.game_id = te.primary_game_id
WHERE COALESCE(tp.total_tournament_prizes, 0) > 0
   OR COALESCE(pe.total_player_earnings, 0) > 0
   OR COALESCE(te.total_team_earnings, 0) > 0
ORDER BY total_ecosystem_value DESC`
