// Package basehdl - base handler dùng chung cho các domain handler.
// BaseHandler bọc một BaseServiceMongo và cung cấp parse/validate/transform
// request trước khi gọi xuống service.
package basehdl

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "meta_content/internal/api/base/service"
	"meta_content/internal/common"
	"meta_content/internal/global"
)

// BaseHandler là handler CRUD generic cho một model.
// Type Parameters:
//   - T: Model lưu trong MongoDB
//   - CreateInput: DTO cho request tạo mới
//   - UpdateInput: DTO cho request cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T]
	filterOptions FilterOptions
}

// FilterOptions giới hạn filter nhận từ client để tránh query tùy tiện.
type FilterOptions struct {
	DeniedFields     []string // Các field không được phép filter (secret, token, ...)
	AllowedOperators []string // Các toán tử Mongo được phép ($eq, $in, ...)
	MaxFields        int      // Số field tối đa trong một filter
}

// NewBaseHandler tạo một BaseHandler mới bọc service cho trước.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: service,
	}
}

// SetFilterOptions cài đặt giới hạn filter cho handler.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SetFilterOptions(opts FilterOptions) {
	h.filterOptions = opts
}

// ParseRequestBody parse request body JSON vào out (con trỏ).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	return c.Bind().Body(out)
}

// ValidateInput validate struct tag của input (validate, oneof, iana_timezone, ...).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu đầu vào không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return nil
}

// ProcessFilter parse filter JSON từ query string và chuẩn hóa các trường đặc biệt.
// Các giá trị _id dạng chuỗi hex 24 ký tự được chuyển thành ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	filterStr := c.Query("filter", "{}")

	var filter map[string]interface{}
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Filter phải là JSON hợp lệ. Giá trị nhận được: %s", filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	filter = normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// validateFilter kiểm tra filter theo FilterOptions của handler.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	opts := h.filterOptions
	if opts.MaxFields > 0 && len(filter) > opts.MaxFields {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter có quá nhiều field (tối đa %d)", opts.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}
	for k, v := range filter {
		for _, denied := range opts.DeniedFields {
			if k == denied {
				return common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Không được phép filter theo field '%s'", k),
					common.StatusBadRequest,
					nil,
				)
			}
		}
		// Kiểm tra toán tử trong sub-map ({"field": {"$gt": 1}})
		if sub, ok := v.(map[string]interface{}); ok && len(opts.AllowedOperators) > 0 {
			for op := range sub {
				if len(op) > 0 && op[0] == '$' {
					allowed := false
					for _, a := range opts.AllowedOperators {
						if op == a {
							allowed = true
							break
						}
					}
					if !allowed {
						return common.NewError(
							common.ErrCodeValidationInput,
							fmt.Sprintf("Toán tử '%s' không được phép trong filter", op),
							common.StatusBadRequest,
							nil,
						)
					}
				}
			}
		}
	}
	return nil
}

// normalizeFilter chuyển các giá trị _id (và field kết thúc bằng Id trỏ tới ObjectID)
// từ chuỗi hex sang primitive.ObjectID để driver so khớp đúng kiểu.
func normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return map[string]interface{}{}
	}
	for k, v := range filter {
		switch val := v.(type) {
		case string:
			if k == "_id" && primitive.IsValidObjectID(val) {
				filter[k] = mustObjectID(val)
			}
		case map[string]interface{}:
			filter[k] = normalizeFilter(val)
		}
	}
	return filter
}

func mustObjectID(s string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// mongoOptionsInput là cấu trúc options nhận từ query string
// Ví dụ: {"projection": {"field": 1}, "sort": {"createdAt": -1}, "limit": 10, "skip": 0}
type mongoOptionsInput struct {
	Projection map[string]interface{} `json:"projection"`
	Sort       map[string]interface{} `json:"sort"`
	Limit      *int64                 `json:"limit"`
	Skip       *int64                 `json:"skip"`
}

// processMongoOptions parse options JSON từ query string.
// findOne = true trả về *options.FindOneOptions, ngược lại *options.FindOptions.
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, findOne bool) (interface{}, error) {
	optsStr := c.Query("options", "{}")

	var input mongoOptionsInput
	if err := json.Unmarshal([]byte(optsStr), &input); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Options phải là JSON hợp lệ. Giá trị nhận được: %s", optsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if findOne {
		opts := mongoopts.FindOne()
		if input.Projection != nil {
			opts.SetProjection(input.Projection)
		}
		if input.Sort != nil {
			opts.SetSort(input.Sort)
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if input.Projection != nil {
		opts.SetProjection(input.Projection)
	}
	if input.Sort != nil {
		opts.SetSort(input.Sort)
	}
	if input.Limit != nil {
		opts.SetLimit(*input.Limit)
	}
	if input.Skip != nil {
		opts.SetSkip(*input.Skip)
	}
	return opts, nil
}

// TransformCreateInputToModel chuyển DTO tạo mới sang Model.
// Field trùng tên được copy; field có struct tag `transform:"str_objectid"`
// (string trong DTO) được chuyển thành primitive.ObjectID trong Model.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	var model T
	if err := transformDTOToModel(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// TransformUpdateInputToModel chuyển DTO cập nhật sang Model (giống TransformCreateInputToModel).
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	var model T
	if err := transformDTOToModel(input, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// transformDTOToModel copy field theo tên từ dto sang model (con trỏ struct).
// Hỗ trợ tag transform:"str_objectid" để chuyển string → primitive.ObjectID.
func transformDTOToModel(dto interface{}, model interface{}) error {
	dtoVal := reflect.ValueOf(dto)
	if dtoVal.Kind() == reflect.Ptr {
		dtoVal = dtoVal.Elem()
	}
	modelVal := reflect.ValueOf(model)
	if modelVal.Kind() != reflect.Ptr {
		return fmt.Errorf("model phải là con trỏ struct")
	}
	modelVal = modelVal.Elem()
	if dtoVal.Kind() != reflect.Struct || modelVal.Kind() != reflect.Struct {
		return fmt.Errorf("dto và model phải là struct")
	}

	dtoType := dtoVal.Type()
	for i := 0; i < dtoType.NumField(); i++ {
		dtoField := dtoType.Field(i)
		dstField := modelVal.FieldByName(dtoField.Name)
		if !dstField.IsValid() || !dstField.CanSet() {
			continue
		}

		srcVal := dtoVal.Field(i)

		// transform:"str_objectid" — DTO giữ string, model giữ ObjectID
		if dtoField.Tag.Get("transform") == "str_objectid" && srcVal.Kind() == reflect.String {
			s := srcVal.String()
			if s == "" {
				continue
			}
			if !primitive.IsValidObjectID(s) {
				return fmt.Errorf("field %s: '%s' không phải ObjectID hợp lệ", dtoField.Name, s)
			}
			id, _ := primitive.ObjectIDFromHex(s)
			if dstField.Type() == reflect.TypeOf(primitive.ObjectID{}) {
				dstField.Set(reflect.ValueOf(id))
			}
			continue
		}

		if srcVal.Type().AssignableTo(dstField.Type()) {
			dstField.Set(srcVal)
		} else if srcVal.Type().ConvertibleTo(dstField.Type()) {
			dstField.Set(srcVal.Convert(dstField.Type()))
		}
	}
	return nil
}
