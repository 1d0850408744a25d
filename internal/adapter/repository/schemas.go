package repository

import (
	"fmt"
	"time"

	"github.com/kelimeci/kelimeci/internal/repository"
	"github.com/kelimeci/kelimeci/pkg/filterexpr"
)

var wordFilterSchema = filterexpr.Schema{
	"word":        {Kind: filterexpr.KindString, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpSW}},
	"srs_level":   {Kind: filterexpr.KindNumber, Ops: []filterexpr.Op{filterexpr.OpEQ, filterexpr.OpGTE, filterexpr.OpLTE}},
	"added_date":  {Kind: filterexpr.KindTimestamp, Ops: []filterexpr.Op{filterexpr.OpGTE, filterexpr.OpLTE}},
	"next_review": {Kind: filterexpr.KindTimestamp, Ops: []filterexpr.Op{filterexpr.OpLTE}},
}

var wordOrderSchema = filterexpr.OrderSchema{
	Default:     "added_date",
	DefaultDesc: true,
	Keys:        []string{"added_date", "next_review", "word", "srs_level"},
}

// BindListQuery parses the query's filter and order_by strings and fills
// the typed query fields the SQL builder consumes.
func BindListQuery(query *repository.ListWordQuery) error {
	predicates, err := filterexpr.Parse(query.GetFilter(), wordFilterSchema)
	if err != nil {
		return err
	}
	for _, pred := range predicates {
		if err := applyPredicate(query, pred); err != nil {
			return err
		}
	}

	order, err := filterexpr.ParseOrderBy(query.GetOrderBy(), wordOrderSchema)
	if err != nil {
		return err
	}
	query.OrderByColumn = order.Key
	query.OrderDesc = order.Desc
	return nil
}

func applyPredicate(query *repository.ListWordQuery, pred filterexpr.Predicate) error {
	switch pred.Field {
	case "word":
		// The equality and prefix forms both narrow on the normalized key.
		query.WordPrefix = pred.Value.(string)
	case "srs_level":
		level := int32(pred.Value.(float64))
		switch pred.Op {
		case filterexpr.OpEQ:
			query.SrsLevel = &level
		case filterexpr.OpGTE:
			query.SrsLevelMin = &level
		case filterexpr.OpLTE:
			query.SrsLevelMax = &level
		}
	case "added_date":
		at := pred.Value.(time.Time)
		switch pred.Op {
		case filterexpr.OpGTE:
			query.AddedAfter = &at
		case filterexpr.OpLTE:
			query.AddedBefore = &at
		}
	case "next_review":
		at := pred.Value.(time.Time)
		query.DueBefore = &at
	default:
		return fmt.Errorf("field %q is not filterable", pred.Field)
	}
	return nil
}
