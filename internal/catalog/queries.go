package catalog

const genresQuery = `SELECT DISTINCT g.genre_name
FROM dim_genre g
ORDER BY g.genre_name`

const revenueGenresQuery = `SELECT DISTINCT g.genre_name
FROM dim_genre g
JOIN dim_game gm ON g.genre_id = gm.genre_id
JOIN fact_sales fs ON gm.game_id = fs.game_id
WHERE fs.revenue_estimate IS NOT NULL AND fs.revenue_estimate > 0
ORDER BY g.genre_name`

const revenuePlatformsQuery = `SELECT DISTINCT p.platform_name
FROM dim_platform p
JOIN dim_game gm ON p.platform_id = gm.platform_id
JOIN fact_sales fs ON gm.game_id = fs.game_id
WHERE fs.revenue_estimate IS NOT NULL AND fs.revenue_estimate > 0
ORDER BY p.platform_name`

const yearsQuery = `SELECT DISTINCT year
FROM fact_sales
ORDER BY year DESC`
