package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrRecordParse marks a reservation record missing required fields.
var ErrRecordParse = errors.New("reservation record missing required fields")

// Reservation is a record owned by the external booking store. Fields the
// store may leave empty are pointers; InvoiceNum is the join key to InvoiceRow.
type Reservation struct {
	ID              string           `json:"page_id"`
	URL             string           `json:"url"`
	BookingNum      string           `json:"booking_num"`
	Faculty         string           `json:"faculty"`
	OrderLimit      *decimal.Decimal `json:"order_limit,omitempty"`
	ReservationDate *time.Time       `json:"res_date,omitempty"`
	TotalWithVAT    *decimal.Decimal `json:"total_w_vat,omitempty"`
	Status          string           `json:"status"`
	InvoiceNum      *string          `json:"invoice_num,omitempty"`
}

// DecodeReservation converts one raw record-store page into a Reservation.
// All missing-key handling lives here; a record without its required fields
// (id, booking number, status) yields ErrRecordParse and is excluded from
// the matchable set by the caller.
func DecodeReservation(raw map[string]interface{}) (Reservation, error) {
	var r Reservation

	id, _ := raw["id"].(string)
	if id == "" {
		return r, fmt.Errorf("%w: no id", ErrRecordParse)
	}
	r.ID = id
	r.URL, _ = raw["url"].(string)

	props, _ := raw["properties"].(map[string]interface{})
	if props == nil {
		return r, fmt.Errorf("%w: record %s has no properties", ErrRecordParse, id)
	}

	booking := nestedString(props, "booking_num", "title", "0", "text", "content")
	if booking == nil || strings.TrimSpace(*booking) == "" {
		return r, fmt.Errorf("%w: record %s has no booking number", ErrRecordParse, id)
	}
	r.BookingNum = strings.TrimSpace(*booking)

	status := nestedString(props, "status", "status", "name")
	if status == nil {
		return r, fmt.Errorf("%w: record %s has no status", ErrRecordParse, id)
	}
	r.Status = *status

	if faculty := nestedString(props, "faculty", "select", "name"); faculty != nil {
		r.Faculty = *faculty
	}
	if limit := nestedNumber(props, "order_limit", "number"); limit != nil {
		d := decimal.NewFromFloat(*limit)
		r.OrderLimit = &d
	}
	if total := nestedNumber(props, "total_with_vat", "number"); total != nil {
		d := decimal.NewFromFloat(*total)
		r.TotalWithVAT = &d
	}
	if start := nestedString(props, "date", "date", "start"); start != nil {
		if t, err := time.Parse(time.RFC3339, *start); err == nil {
			r.ReservationDate = &t
		} else if t, err := time.Parse("2006-01-02", *start); err == nil {
			r.ReservationDate = &t
		}
	}
	if num := nestedNumber(props, "invoice_num", "number"); num != nil {
		s := strconv.FormatFloat(*num, 'f', -1, 64)
		r.InvoiceNum = &s
	}

	return r, nil
}

// nestedValue walks a path of map keys (a numeric key indexes into a slice),
// returning nil as soon as any step is missing.
func nestedValue(m map[string]interface{}, path ...string) interface{} {
	var current interface{} = m
	for _, key := range path {
		switch node := current.(type) {
		case map[string]interface{}:
			current = node[key]
		case []interface{}:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil
			}
			current = node[idx]
		default:
			return nil
		}
	}
	return current
}

func nestedString(m map[string]interface{}, path ...string) *string {
	if s, ok := nestedValue(m, path...).(string); ok {
		return &s
	}
	return nil
}

func nestedNumber(m map[string]interface{}, path ...string) *float64 {
	if f, ok := nestedValue(m, path...).(float64); ok {
		return &f
	}
	return nil
}
