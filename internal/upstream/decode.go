package upstream

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/catalog-gateway/internal/catalog"
)

// rawProduct mirrors the upstream product wire shape. Fields the upstream
// omits stay zero-valued and pass through the mapper unchanged.
type rawProduct struct {
	ID                 int
	Title              string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage float64
	Rating             float64
	Stock              int
	Brand              string
	Category           string
	Thumbnail          string
	Images             []string
}

// toDomain projects the raw upstream record onto the domain shape,
// field for field.
func (r rawProduct) toDomain() catalog.Product {
	return catalog.Product{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description,
		Price:              r.Price,
		Category:           r.Category,
		Thumbnail:          r.Thumbnail,
		Rating:             r.Rating,
		Stock:              r.Stock,
		Brand:              r.Brand,
		Images:             r.Images,
		DiscountPercentage: r.DiscountPercentage,
	}
}

// decodeListPayload decodes an upstream bulk response of the form
// {"products": [...], "total": N, "skip": S, "limit": L}.
func decodeListPayload(data []byte) ([]catalog.Product, int, error) {
	var (
		products []catalog.Product
		total    int
	)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				raw, err := decodeProduct(d)
				if err != nil {
					return err
				}
				products = append(products, raw.toDomain())
				return nil
			})
		case "total":
			v, err := d.Int()
			total = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// decodeProductPayload decodes a single upstream product object.
func decodeProductPayload(data []byte) (*catalog.Product, error) {
	raw, err := decodeProduct(jx.DecodeBytes(data))
	if err != nil {
		return nil, err
	}
	p := raw.toDomain()
	return &p, nil
}

func decodeProduct(d *jx.Decoder) (rawProduct, error) {
	var p rawProduct
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Int()
		case "title":
			p.Title, err = optStr(d)
		case "description":
			p.Description, err = optStr(d)
		case "price":
			p.Price, err = decodeDecimal(d)
		case "discountPercentage":
			p.DiscountPercentage, err = d.Float64()
		case "rating":
			p.Rating, err = d.Float64()
		case "stock":
			p.Stock, err = d.Int()
		case "brand":
			p.Brand, err = optStr(d)
		case "category":
			p.Category, err = optStr(d)
		case "thumbnail":
			p.Thumbnail, err = optStr(d)
		case "images":
			return d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				p.Images = append(p.Images, s)
				return nil
			})
		default:
			return d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	return p, err
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}

// optStr decodes a string field that the upstream may send as null.
func optStr(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}
