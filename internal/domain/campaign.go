package domain

// Colunas de negócio reconhecidas em lotes de campanhas. Lotes podem trazer
// colunas adicionais; somente estas têm semântica para o pipeline.
const (
	ColumnID           = "id"
	ColumnDate         = "c_date"
	ColumnCampaignName = "campaign_name"
	ColumnCategory     = "category"
	ColumnImpressions  = "impressions"
	ColumnClicks       = "clicks"
	ColumnLeads        = "leads"
	ColumnOrders       = "orders"
	ColumnSpend        = "mark_spent"
	ColumnRevenue      = "revenue"
)

// RequiredColumns são os campos de negócio obrigatórios: linhas sem valor em
// qualquer um deles (quando a coluna existe no schema) são descartadas.
var RequiredColumns = []string{
	ColumnDate,
	ColumnCampaignName,
	ColumnImpressions,
	ColumnClicks,
	ColumnSpend,
	ColumnRevenue,
}

// NonNegativeColumns são os contadores numéricos que nunca podem ser
// negativos quando presentes.
var NonNegativeColumns = []string{
	ColumnImpressions,
	ColumnClicks,
	ColumnLeads,
	ColumnOrders,
	ColumnSpend,
	ColumnRevenue,
}

// Colunas derivadas pelo motor de features, na grafia interna de cálculo
const (
	ColumnCTR            = "CTR_pct"
	ColumnCPC            = "CPC"
	ColumnCPA            = "CPA"
	ColumnConversionRate = "ConversionRate_pct"
	ColumnROAS           = "ROAS"
	ColumnProfit         = "Profit"
	ColumnLeadRate       = "LeadRate_pct"
	ColumnYear           = "Year"
	ColumnMonth          = "Month"
	ColumnWeekday        = "Weekday"
	ColumnIsWeekend      = "Is_Weekend"
)

// DerivedColumns lista as colunas introduzidas pelo motor de features,
// na ordem em que são anexadas ao frame.
var DerivedColumns = []string{
	ColumnCTR,
	ColumnCPC,
	ColumnCPA,
	ColumnConversionRate,
	ColumnROAS,
	ColumnProfit,
	ColumnLeadRate,
	ColumnYear,
	ColumnMonth,
	ColumnWeekday,
	ColumnIsWeekend,
}

// FactColumnRenames mapeia as colunas derivadas para a convenção minúscula
// da tabela fato. Colunas de negócio passam sem renomear.
var FactColumnRenames = map[string]string{
	ColumnCTR:            "ctr_pct",
	ColumnCPC:            "cpc",
	ColumnCPA:            "cpa",
	ColumnConversionRate: "conversionrate_pct",
	ColumnROAS:           "roas",
	ColumnProfit:         "profit",
	ColumnLeadRate:       "leadrate_pct",
	ColumnYear:           "year",
	ColumnMonth:          "month",
	ColumnWeekday:        "weekday",
	ColumnIsWeekend:      "is_weekend",
}

// DateLayout é a forma canônica de datas após a limpeza
const DateLayout = "2006-01-02"
