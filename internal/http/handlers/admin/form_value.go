package admin

import (
	"encoding/json"
	"strings"
)

// formValue 表单原值；JSON 数字与字符串都按原文保留，交给校验规则统一转换
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = formValue(s)
		return nil
	}
	*v = formValue(raw)
	return nil
}

func (v formValue) String() string {
	return string(v)
}
