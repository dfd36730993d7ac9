package auth

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	appTypeMismatchCode = "AADSTS9002325"
	missingEmailText    = "Error getting user email from external provider"
)

const appTypeMismatchMessage = `Lỗi cấu hình xác thực. Có sự không khớp giữa loại ứng dụng trên Azure AD và cài đặt trên Supabase. Vui lòng kiểm tra kỹ:
1) Trên Azure AD: Ứng dụng phải được đăng ký dưới nền tảng "Web" (XÓA nền tảng "SPA" nếu có).
2) Trên Supabase: Trường "Secret Value" phải được điền chính xác với giá trị đã tạo trên Azure AD.`

const missingPermissionMessage = `Lỗi cấp quyền API. Supabase đã xác thực thành công nhưng không có quyền đọc thông tin người dùng từ Microsoft. Vui lòng kiểm tra lại:
1) Trên Azure AD, vào mục "API permissions".
2) Nhấn "+ Add a permission", chọn "Microsoft Graph", rồi "Delegated permissions".
3) Thêm các quyền: "email", "openid", "profile", và "User.Read".
4) Quan trọng: Nhấn nút "Grant admin consent for..." để cấp quyền cho toàn bộ tổ chức.`

// Diagnosis explains a failed provider redirect to the user.
type Diagnosis struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// Diagnosis kinds.
const (
	KindAppTypeMismatch   = "app_type_mismatch"
	KindMissingPermission = "missing_api_permission"
	KindGeneric           = "login_error"
)

// Diagnose reads error_description from the query, falling back to the URL
// fragment. ok is false when neither carries one.
func Diagnose(query url.Values, fragment string) (Diagnosis, bool) {
	desc := query.Get("error_description")
	if desc == "" {
		fragmentValues, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
		if err == nil {
			desc = fragmentValues.Get("error_description")
		}
	}
	if desc == "" {
		return Diagnosis{}, false
	}

	// values may arrive encoded twice by the provider
	desc = strings.ReplaceAll(desc, "+", " ")
	if decoded, err := url.QueryUnescape(desc); err == nil {
		desc = decoded
	}

	switch {
	case strings.Contains(desc, appTypeMismatchCode):
		return Diagnosis{Kind: KindAppTypeMismatch, Description: desc, Message: appTypeMismatchMessage}, true
	case strings.Contains(desc, missingEmailText):
		return Diagnosis{Kind: KindMissingPermission, Description: desc, Message: missingPermissionMessage}, true
	default:
		return Diagnosis{Kind: KindGeneric, Description: desc, Message: fmt.Sprintf("Lỗi đăng nhập: %s.", desc)}, true
	}
}
