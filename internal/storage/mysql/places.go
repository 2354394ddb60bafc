package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"travelassist/internal/domain"
)

// UpsertPlace inserts or refreshes a place keyed on google_place_id and
// returns the stored row. Seed rows without a directory id always insert.
func (r *Repo) UpsertPlace(ctx context.Context, p domain.Place) (domain.Place, error) {
	res, err := r.db.ExecContext(ctx, upsertPlaceSQL,
		valStr(p.GooglePlaceID),
		p.Name,
		string(p.Kind),
		p.Lat, p.Lon,
		valF64(p.Rating),
		valF64(p.AvgCostForTwo),
		valF64(p.PricePerNight),
		tagsJSON(p.Tags),
		valStr(p.City),
		valStr(p.State),
		valStr(p.Address),
	)
	if err != nil {
		return domain.Place{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Place{}, err
	}
	return r.GetPlace(ctx, id)
}

func (r *Repo) GetPlace(ctx context.Context, id int64) (domain.Place, error) {
	return r.scanPlace(r.db.QueryRowContext(ctx, selectPlaceCols+"WHERE id = ?", id))
}

func (r *Repo) ListPlacesByKind(ctx context.Context, kind domain.PlaceKind) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx, selectPlaceCols+"WHERE kind = ? ORDER BY id", string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Place
	for rows.Next() {
		p, err := r.scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) InsertMenuItem(ctx context.Context, m domain.MenuItem) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertMenuItemSQL,
		m.PlaceID, m.Name, valStr(m.Description), tagsJSON(m.Tags))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ListMenuItems(ctx context.Context, placeIDs []int64) (map[int64][]domain.MenuItem, error) {
	out := make(map[int64][]domain.MenuItem, len(placeIDs))
	if len(placeIDs) == 0 {
		return out, nil
	}

	ph := make([]string, len(placeIDs))
	args := make([]any, len(placeIDs))
	for i, id := range placeIDs {
		ph[i] = "?"
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, place_id, name, description, tags FROM menu_items
		 WHERE place_id IN (`+strings.Join(ph, ",")+`) ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.MenuItem
		var desc sql.NullString
		var tags []byte
		if err := rows.Scan(&m.ID, &m.PlaceID, &m.Name, &desc, &tags); err != nil {
			return nil, err
		}
		m.Description = strPtr(desc)
		_ = json.Unmarshal(tags, &m.Tags)
		out[m.PlaceID] = append(out[m.PlaceID], m)
	}
	return out, rows.Err()
}

func (r *Repo) UpdatePlaceRating(ctx context.Context, placeID int64, rating float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE places SET rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		rating, placeID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM places WHERE id = ?`, placeID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func (r *Repo) CountPlaces(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&n)
	return n, err
}

func (r *Repo) scanPlace(row rowScanner) (domain.Place, error) {
	var p domain.Place
	var gpid, city, state, addr sql.NullString
	var rating, cost, night sql.NullFloat64
	var kind string
	var tags []byte

	err := row.Scan(
		&p.ID, &gpid, &p.Name, &kind, &p.Lat, &p.Lon,
		&rating, &cost, &night, &tags, &city, &state, &addr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	p.Kind = domain.PlaceKind(kind)
	p.GooglePlaceID = strPtr(gpid)
	p.Rating = f64Ptr(rating)
	p.AvgCostForTwo = f64Ptr(cost)
	p.PricePerNight = f64Ptr(night)
	p.City = strPtr(city)
	p.State = strPtr(state)
	p.Address = strPtr(addr)
	_ = json.Unmarshal(tags, &p.Tags)
	return p, nil
}
