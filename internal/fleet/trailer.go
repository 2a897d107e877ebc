package fleet

import (
	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"
	"fleet-backend/internal/resource"
)

var trailerSchema = listview.NewSchema[models.Trailer]().
	Text("trailer_no", func(t models.Trailer) string { return t.TrailerNo }).
	Enum("company", func(t models.Trailer) string { return t.CompanyUnder }).
	Date("mulkiya_exp", func(t models.Trailer) dates.Date { return t.MulkiyaExp }, listview.Asc).
	Date("oman_ins_exp", func(t models.Trailer) dates.Date { return t.OmanInsExp }, listview.Asc).
	Number("asset_value", func(t models.Trailer) float64 { return t.AssetValue }, listview.Desc)

var trailerColumns = []export.Column[models.Trailer]{
	{Key: "trailer_no", Value: func(t models.Trailer) any { return t.TrailerNo }},
	{Key: "company_under", Value: func(t models.Trailer) any { return t.CompanyUnder }},
	{Key: "mulkiya_exp", Value: func(t models.Trailer) any { return t.MulkiyaExp.String() }},
	{Key: "oman_ins_exp", Value: func(t models.Trailer) any { return t.OmanInsExp.String() }},
	{Key: "asset_value", Value: func(t models.Trailer) any { return t.AssetValue }},
}

type TrailerSummary struct {
	Total           int     `json:"total"`
	TotalAssetValue float64 `json:"total_asset_value"`
}

var Trailers = resource.New(resource.Config[models.Trailer]{
	Entity:    "Trailer",
	AuditType: "trailer",
	KeyParam:  "trailer_no",
	KeyColumn: "trailer_no",
	Order:     "trailer_no asc",
	Rules: apiutil.Rules{
		Required: []string{"trailer_no"},
		Numbers:  []string{"asset_value"},
	},
	ID:        func(t *models.Trailer) uint { return t.ID },
	Key:       func(t *models.Trailer) string { return t.TrailerNo },
	Schema:    trailerSchema,
	Documents: models.OwnerTrailer,
	Export:    &resource.ExportSpec[models.Trailer]{File: export.TrailersFile, Sheet: "Trailers", Columns: trailerColumns},
	Summary: func(recs []models.Trailer) any {
		return TrailerSummary{
			Total:           len(recs),
			TotalAssetValue: listview.Sum(recs, func(t models.Trailer) float64 { return t.AssetValue }),
		}
	},
})

var outsideTrailerColumns = []export.Column[models.OutsideTrailer]{
	{Key: "trailer_no", Value: func(t models.OutsideTrailer) any { return t.TrailerNo }},
	{Key: "owner", Value: func(t models.OutsideTrailer) any { return t.Owner }},
	{Key: "company_under", Value: func(t models.OutsideTrailer) any { return t.CompanyUnder }},
	{Key: "mulkiya_exp", Value: func(t models.OutsideTrailer) any { return t.MulkiyaExp.String() }},
	{Key: "oman_ins_exp", Value: func(t models.OutsideTrailer) any { return t.OmanInsExp.String() }},
}

var OutsideTrailers = resource.New(resource.Config[models.OutsideTrailer]{
	Entity:    "Outside trailer",
	AuditType: "outside_trailer",
	KeyParam:  "trailer_no",
	KeyColumn: "trailer_no",
	Order:     "trailer_no asc",
	Rules:     apiutil.Rules{Required: []string{"trailer_no", "owner"}},
	ID:        func(t *models.OutsideTrailer) uint { return t.ID },
	Key:       func(t *models.OutsideTrailer) string { return t.TrailerNo },
	Schema: listview.NewSchema[models.OutsideTrailer]().
		Text("trailer_no", func(t models.OutsideTrailer) string { return t.TrailerNo }).
		Enum("owner", func(t models.OutsideTrailer) string { return t.Owner }).
		Date("mulkiya_exp", func(t models.OutsideTrailer) dates.Date { return t.MulkiyaExp }, listview.Asc),
	Documents: models.OwnerOutsideTrailer,
	Export:    &resource.ExportSpec[models.OutsideTrailer]{File: export.OutsideTrailersFile, Sheet: "Outside Trailers", Columns: outsideTrailerColumns},
})
