package response

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				id, ok := src.(uuid.UUID)
				if !ok {
					return nil, errors.New("expected uuid.UUID")
				}
				return id.String(), nil
			},
		},
	},
}
