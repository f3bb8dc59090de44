package services

// Remote report names: the {name} segment of /report/{name}/ on the report
// server.
const (
	reportDashboard      = "dashboard"
	reportTurnoverSeries = "turnover_series"
	reportBills          = "bills"
	reportArticles       = "articles"
	reportPromotions     = "promotions"
	reportOperators      = "operators"
	reportPromotionWrite = "promotion_write"
)

// SQL templates the query blocks carry. The report server owns the dialect;
// the gateway only substitutes placeholders (dates, offsets, ids, search
// text) into these texts before dispatch. Placeholder values are validated by
// the envelope builder, never interpolated raw.
const (
	queryCurrentTurnover = `SELECT SUM(b.total) AS Total FROM bills b WHERE b.closed_at >= 'START_DATE' AND b.closed_at < 'END_DATE'`

	queryLastTurnover = `SELECT SUM(b.total) AS Total FROM bills b WHERE b.closed_at >= 'LAST_START_DATE' AND b.closed_at < 'LAST_END_DATE'`

	queryCurrentPayType = `SELECT b.pay_type AS PayType, SUM(b.total) AS Total FROM bills b WHERE b.closed_at >= 'START_DATE' AND b.closed_at < 'END_DATE' GROUP BY b.pay_type`

	queryTurnoverByDay = `SELECT CONVERT(date, DATEADD(hour, TIMEOFFSET, b.closed_at)) AS Day, SUM(b.total) AS Total FROM bills b WHERE b.closed_at >= 'START_DATE' AND b.closed_at < 'END_DATE' GROUP BY CONVERT(date, DATEADD(hour, TIMEOFFSET, b.closed_at)) ORDER BY Day`

	queryBills = `SELECT b.bill_no AS BillNo, b.closed_at AS ClosedAt, b.operator_name AS Operator, b.pay_type AS PayType, b.total AS Total FROM bills b WHERE b.closed_at >= 'START_DATE' AND b.closed_at < 'END_DATE' ORDER BY b.closed_at`

	queryArticles = `SELECT a.article_id AS ArticleID, a.name AS Name, a.group_name AS GroupName, a.tax_group AS TaxGroup, a.price AS Price FROM articles a WHERE a.name LIKE '%SEARCH_TEXT%' ORDER BY a.name`

	queryPromotions = `SELECT p.promo_id AS PromoID, p.article_id AS ArticleID, p.description AS Description, p.price AS Price, p.valid_from AS ValidFrom, p.valid_to AS ValidTo FROM promotions p ORDER BY p.valid_from DESC`

	queryOperatorByName = `SELECT o.username AS UserName, o.pass_hash AS PassHash, o.active_until AS ActiveUntil FROM operators o WHERE o.username = 'USERNAME'`

	execInsertPromotion = `INSERT INTO promotions (promo_id, article_id, description, price, valid_from, valid_to) VALUES ('PROMO_ID', 'ARTICLE_ID', 'DESCRIPTION', PROMO_PRICE, 'VALID_FROM', 'VALID_TO')`

	execUpdatePromotion = `UPDATE promotions SET article_id = 'ARTICLE_ID', description = 'DESCRIPTION', price = PROMO_PRICE, valid_from = 'VALID_FROM', valid_to = 'VALID_TO' WHERE promo_id = 'PROMO_ID'`

	execDeletePromotion = `DELETE FROM promotions WHERE promo_id = 'PROMO_ID'`
)

// Block names shared between the envelope and result interpretation.
const (
	blockCurrentTurnover = "CurrentTurnover"
	blockLastTurnover    = "LastTurnover"
	blockCurrentPayType  = "CurrentPayType"
	blockTurnoverByDay   = "TurnoverByDay"
	blockBills           = "Bills"
	blockArticles        = "Articles"
	blockPromotions      = "Promotions"
	blockOperators       = "Operators"
	blockSavePromotion   = "SavePromotion"
	blockDeletePromotion = "DeletePromotion"
)
