package postgres

import (
	"context"
	cl "portfolio/pkg/catalog"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools/postgres"
	"gopkg.in/guregu/null.v3"
)

const (
	tableAlbums = "albums"
	tableImages = "images"
)

const (
	albumsColumnID                = `"id"`
	albumsColumnTitle             = `"title"`
	albumsColumnDescription       = `"description"`
	albumsColumnCategory          = `"category"`
	albumsColumnSubcategory       = `"subcategory"`
	albumsColumnPublished         = `"published"`
	albumsColumnDisplayOrder      = `"display_order"`
	albumsColumnCoverImageMobile  = `"cover_image_mobile"`
	albumsColumnCoverImageDesktop = `"cover_image_desktop"`
	albumsColumnCreatedAt         = `"created_at"`
	albumsColumnUpdatedAt         = `"updated_at"`
)

var albumsColumns = []string{
	albumsColumnID,
	albumsColumnTitle,
	albumsColumnDescription,
	albumsColumnCategory,
	albumsColumnSubcategory,
	albumsColumnPublished,
	albumsColumnDisplayOrder,
	albumsColumnCoverImageMobile,
	albumsColumnCoverImageDesktop,
	albumsColumnCreatedAt,
	albumsColumnUpdatedAt,
}

const (
	imagesColumnID           = `"id"`
	imagesColumnAlbumID      = `"album_id"`
	imagesColumnImagePath    = `"image_path"`
	imagesColumnDisplayOrder = `"display_order"`
)

// albumImageRow is one row of albums LEFT JOIN images. Albums without images
// produce a single row with null image columns.
type albumImageRow struct {
	cl.Album
	ImageID           null.String `db:"image_id"`
	ImagePath         null.String `db:"image_path"`
	ImageDisplayOrder null.Int    `db:"image_display_order"`
}

// ListPublishedAlbums returns every published album with its images, both in
// display order.
func (p *Postgres) ListPublishedAlbums(ctx context.Context) ([]cl.Album, error) {
	qv, err := buildListPublishedAlbumsQuery()
	if err != nil {
		return nil, errors.Wrap(err, "build list published albums query")
	}

	var rows []albumImageRow
	err = p.db.Do(ctx, "list_published_albums", func(ctx context.Context, _ postgres.Conn) error {
		return p.sqldb.SelectContext(ctx, &rows, qv.query, qv.args...)
	})
	if err != nil {
		return nil, errors.Wrap(err, "execute list published albums query")
	}
	return groupAlbumRows(rows), nil
}

// GetAlbum returns a single published album with its images.
func (p *Postgres) GetAlbum(ctx context.Context, id string) (cl.GetAlbumRes, error) {
	var res cl.GetAlbumRes

	qv, err := buildGetAlbumQuery(id)
	if err != nil {
		return res, errors.Wrap(err, "build get album query")
	}

	var rows []albumImageRow
	err = p.db.Do(ctx, "get_album", func(ctx context.Context, _ postgres.Conn) error {
		return p.sqldb.SelectContext(ctx, &rows, qv.query, qv.args...)
	})
	if err != nil {
		return res, errors.Wrap(err, "execute get album query")
	}

	// If not rows are found, return a 404.
	albums := groupAlbumRows(rows)
	if len(albums) == 0 {
		return res, cl.ErrNotFound
	}

	res = cl.GetAlbumRes{
		Album: &albums[0],
	}
	return res, nil
}

func selectPublishedAlbums() sq.SelectBuilder {
	columns := tableColumns(tableAlbums, albumsColumns)
	columns = append(columns,
		aliasedColumn(tableImages, imagesColumnID, "image_id"),
		aliasedColumn(tableImages, imagesColumnImagePath, "image_path"),
		aliasedColumn(tableImages, imagesColumnDisplayOrder, "image_display_order"),
	)

	return psql.
		Select(columns...).
		From(tableAlbums).
		LeftJoin(joinOn(tableImages, imagesColumnAlbumID, tableAlbums, albumsColumnID)).
		Where(sq.Eq{tableColumn(tableAlbums, albumsColumnPublished): true}).
		OrderBy(
			tableColumn(tableAlbums, albumsColumnDisplayOrder),
			tableColumn(tableAlbums, albumsColumnID),
			tableColumn(tableImages, imagesColumnDisplayOrder),
			tableColumn(tableImages, imagesColumnID),
		)
}

func buildListPublishedAlbumsQuery() (QueryValues, error) {
	q, args, err := selectPublishedAlbums().ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "list published albums build query into SQL string")
}

func buildGetAlbumQuery(id string) (QueryValues, error) {
	q, args, err := selectPublishedAlbums().
		Where(sq.Eq{tableColumn(tableAlbums, albumsColumnID): id}).
		ToSql()

	return QueryValues{q, args}, errors.Wrap(err, "get album build query into SQL string")
}

// groupAlbumRows folds joined rows, ordered by album, into albums.
func groupAlbumRows(rows []albumImageRow) []cl.Album {
	albums := make([]cl.Album, 0)
	for _, r := range rows {
		if len(albums) == 0 || albums[len(albums)-1].ID != r.ID {
			a := r.Album
			a.Images = make([]cl.Image, 0)
			albums = append(albums, a)
		}
		if !r.ImageID.Valid {
			continue
		}
		last := &albums[len(albums)-1]
		last.Images = append(last.Images, cl.Image{
			ID:           r.ImageID.String,
			AlbumID:      r.ID,
			ImagePath:    r.ImagePath.String,
			DisplayOrder: int(r.ImageDisplayOrder.Int64),
		})
	}
	return albums
}
