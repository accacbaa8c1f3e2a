package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

// SubmitRequest вход оркестратора отправки, уже прошедший структурную проверку.
type SubmitRequest struct {
	BeautyTitle string
	Title       string
	OtherTitles string
	Connect     string
	AddTime     string

	User   UserInput
	Coords CoordsInput
	Level  LevelInput
	Images []ImageInput
}

type UserInput struct {
	Email string
	Fam   string
	Name  string
	Otc   string
	Phone string
}

type CoordsInput struct {
	Latitude  float64
	Longitude float64
	Height    float64
}

// LevelInput категории сложности по сезонам; nil пишется как NULL.
type LevelInput struct {
	Winter *string
	Summer *string
	Autumn *string
	Spring *string
}

type ImageInput struct {
	Data  []byte
	Title string
}

// UpdateRequest частичное изменение записи. nil значит поле не передано.
type UpdateRequest struct {
	BeautyTitle *string
	Title       *string
	AddTime     *string
	OtherTitles *string
	Connect     *string
	Level       *LevelInput
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в ошибках нужны имена ключей JSON, а не полей структуры
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Разделы payload. Значения остаются сырыми: проверяется только наличие ключей.
type submitSection struct {
	BeautyTitle json.RawMessage `json:"beauty_title" validate:"required"`
	Title       json.RawMessage `json:"title" validate:"required"`
	AddTime     json.RawMessage `json:"add_time" validate:"required"`
	User        json.RawMessage `json:"user" validate:"required"`
	Coords      json.RawMessage `json:"coords" validate:"required"`
	Level       json.RawMessage `json:"level" validate:"required"`
	Images      json.RawMessage `json:"images" validate:"required"`
	OtherTitles json.RawMessage `json:"other_titles"`
	Connect     json.RawMessage `json:"connect"`
}

type userSection struct {
	Email json.RawMessage `json:"email" validate:"required"`
	Fam   json.RawMessage `json:"fam" validate:"required"`
	Name  json.RawMessage `json:"name" validate:"required"`
	Otc   json.RawMessage `json:"otc" validate:"required"`
	Phone json.RawMessage `json:"phone" validate:"required"`
}

type coordsSection struct {
	Latitude  json.RawMessage `json:"latitude" validate:"required"`
	Longitude json.RawMessage `json:"longitude" validate:"required"`
	Height    json.RawMessage `json:"height" validate:"required"`
}

type levelSection struct {
	Winter json.RawMessage `json:"winter" validate:"required"`
	Summer json.RawMessage `json:"summer" validate:"required"`
	Autumn json.RawMessage `json:"autumn" validate:"required"`
	Spring json.RawMessage `json:"spring" validate:"required"`
}

type imageSection struct {
	Data  json.RawMessage `json:"data" validate:"required"`
	Title json.RawMessage `json:"title" validate:"required"`
}

type updateSection struct {
	BeautyTitle json.RawMessage `json:"beauty_title"`
	Title       json.RawMessage `json:"title"`
	AddTime     json.RawMessage `json:"add_time"`
	OtherTitles json.RawMessage `json:"other_titles"`
	Connect     json.RawMessage `json:"connect"`
	Level       json.RawMessage `json:"level"`
}

// DecodeSubmission проверяет структуру составного payload и приводит значения к типам.
// Смысл значений (диапазон широты, формат времени, email) не проверяется.
func DecodeSubmission(body []byte) (SubmitRequest, error) {
	var sec submitSection
	if err := checkSection(body, "", &sec); err != nil {
		return SubmitRequest{}, err
	}
	var user userSection
	if err := checkSection(sec.User, "user", &user); err != nil {
		return SubmitRequest{}, err
	}
	var coords coordsSection
	if err := checkSection(sec.Coords, "coords", &coords); err != nil {
		return SubmitRequest{}, err
	}
	var level levelSection
	if err := checkSection(sec.Level, "level", &level); err != nil {
		return SubmitRequest{}, err
	}
	images, err := checkImages(sec.Images)
	if err != nil {
		return SubmitRequest{}, err
	}

	var req SubmitRequest
	d := &fieldDecoder{}
	d.text(sec.BeautyTitle, "beauty_title", &req.BeautyTitle)
	d.text(sec.Title, "title", &req.Title)
	d.text(sec.OtherTitles, "other_titles", &req.OtherTitles)
	d.text(sec.Connect, "connect", &req.Connect)
	d.text(sec.AddTime, "add_time", &req.AddTime)

	d.text(user.Email, "user.email", &req.User.Email)
	d.text(user.Fam, "user.fam", &req.User.Fam)
	d.text(user.Name, "user.name", &req.User.Name)
	d.text(user.Otc, "user.otc", &req.User.Otc)
	d.text(user.Phone, "user.phone", &req.User.Phone)

	d.number(coords.Latitude, "coords.latitude", &req.Coords.Latitude)
	d.number(coords.Longitude, "coords.longitude", &req.Coords.Longitude)
	d.number(coords.Height, "coords.height", &req.Coords.Height)

	d.level(level, "level", &req.Level)

	req.Images = make([]ImageInput, 0, len(images))
	for i, img := range images {
		in := ImageInput{Data: blob(img.Data)}
		d.text(img.Title, fmt.Sprintf("images[%d].title", i), &in.Title)
		req.Images = append(req.Images, in)
	}
	if d.err != nil {
		return SubmitRequest{}, d.err
	}
	return req, nil
}

// DecodeUpdate разбирает тело PATCH. Тело должно быть JSON-объектом, все ключи необязательны.
func DecodeUpdate(body []byte) (UpdateRequest, error) {
	var sec updateSection
	if err := checkSection(body, "", &sec); err != nil {
		return UpdateRequest{}, err
	}

	var req UpdateRequest
	d := &fieldDecoder{}
	d.optText(sec.BeautyTitle, "beauty_title", &req.BeautyTitle)
	d.optText(sec.Title, "title", &req.Title)
	d.optText(sec.AddTime, "add_time", &req.AddTime)
	d.optText(sec.OtherTitles, "other_titles", &req.OtherTitles)
	d.optText(sec.Connect, "connect", &req.Connect)

	if len(sec.Level) > 0 && !isNull(sec.Level) {
		var level updateLevelSection
		if err := checkSection(sec.Level, "level", &level); err != nil {
			return UpdateRequest{}, err
		}
		req.Level = &LevelInput{}
		d.optText(level.Winter, "level.winter", &req.Level.Winter)
		d.optText(level.Summer, "level.summer", &req.Level.Summer)
		d.optText(level.Autumn, "level.autumn", &req.Level.Autumn)
		d.optText(level.Spring, "level.spring", &req.Level.Spring)
	}
	if d.err != nil {
		return UpdateRequest{}, d.err
	}
	return req, nil
}

type updateLevelSection struct {
	Winter json.RawMessage `json:"winter"`
	Summer json.RawMessage `json:"summer"`
	Autumn json.RawMessage `json:"autumn"`
	Spring json.RawMessage `json:"spring"`
}

// checkSection проверяет, что raw это JSON-объект, в нём есть все ключи с тегом required.
func checkSection(raw []byte, name string, dst any) error {
	if !isObject(raw) {
		if name == "" {
			return &ValidationError{Reason: "payload must be a JSON object"}
		}
		return malformedSection(name)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		if name == "" {
			return &ValidationError{Reason: "payload must be a JSON object"}
		}
		return malformedSection(name)
	}
	fillSection(keys, dst)
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return missingField(joinField(name, verrs[0].Field()))
		}
		return err
	}
	return nil
}

// fillSection раскладывает ключи по полям dst с точным совпадением имени из тега json.
// json.Unmarshal в структуру сравнивает ключи без учёта регистра, "Title" попал бы в title.
func fillSection(keys map[string]json.RawMessage, dst any) {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if raw, ok := keys[name]; ok {
			v.Field(i).Set(reflect.ValueOf(raw))
		}
	}
}

func checkImages(raw json.RawMessage) ([]imageSection, error) {
	var items []json.RawMessage
	if !isArray(raw) || json.Unmarshal(raw, &items) != nil {
		return nil, malformedSection("images")
	}
	out := make([]imageSection, len(items))
	for i, item := range items {
		if err := checkSection(item, fmt.Sprintf("images[%d]", i), &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// fieldDecoder запоминает первую ошибку приведения, дальнейшие вызовы пропускаются.
type fieldDecoder struct {
	err error
}

// text принимает строку или скаляр (число, bool) как текст. null и отсутствие дают "".
func (d *fieldDecoder) text(raw json.RawMessage, field string, dst *string) {
	if d.err != nil || len(raw) == 0 || isNull(raw) {
		return
	}
	s, ok := scalarText(raw)
	if !ok {
		d.err = invalidValue(field)
		return
	}
	*dst = s
}

// optText как text, но null и отсутствие дают nil.
func (d *fieldDecoder) optText(raw json.RawMessage, field string, dst **string) {
	if d.err != nil || len(raw) == 0 || isNull(raw) {
		return
	}
	s, ok := scalarText(raw)
	if !ok {
		d.err = invalidValue(field)
		return
	}
	*dst = &s
}

// number принимает число или числовую строку ("45.3842").
func (d *fieldDecoder) number(raw json.RawMessage, field string, dst *float64) {
	if d.err != nil {
		return
	}
	s, ok := scalarText(raw)
	if !ok || isNull(raw) {
		d.err = invalidValue(field)
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		d.err = invalidValue(field)
		return
	}
	*dst = v
}

func (d *fieldDecoder) level(sec levelSection, prefix string, dst *LevelInput) {
	d.optText(sec.Winter, prefix+".winter", &dst.Winter)
	d.optText(sec.Summer, prefix+".summer", &dst.Summer)
	d.optText(sec.Autumn, prefix+".autumn", &dst.Autumn)
	d.optText(sec.Spring, prefix+".spring", &dst.Spring)
}

func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	switch raw[0] {
	case '{', '[':
		return "", false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	default:
		return string(raw), true
	}
}

// blob данные изображения непрозрачны: строка хранится как есть, прочее сырым JSON.
func blob(raw json.RawMessage) []byte {
	if isNull(raw) {
		return nil
	}
	if s, ok := scalarText(raw); ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return []byte(s)
	}
	return []byte(raw)
}

func isObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func isNull(raw []byte) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func joinField(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
