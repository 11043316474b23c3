package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// copyOption flattens ids to strings and timestamps to Unix seconds.
var copyOption = copier.Option{
	IgnoreEmpty: false,
	DeepCopy:    true,
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).Unix(), nil
			},
		},
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
	},
}

func copyInto[T any](src any) (*T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copyOption); err != nil {
		return nil, err
	}
	return &dst, nil
}

func copyList[T any, S any](src []*S) ([]*T, error) {
	out := make([]*T, 0, len(src))
	for _, s := range src {
		d, err := copyInto[T](s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
