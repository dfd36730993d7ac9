package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hệ thống Quản lý Văn bản PVN", "van ban"},
		{"CSDL   Sổ   Tay", "sotay"},
		{"Cơ sở dữ liệu Nhân sự", "nhan su"},
		{"Đào tạo trực tuyến", "dao tao truc tuyen"},
		{"E-Office Application", "e office"},
		{"so he thong tay", "sotay"},
		{"Sổ tay PVN 2025", "sotay 2025"},
		{"PVN Database Management System", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Hệ thống Quản lý Văn bản PVN",
		"so he thong tay",
		"Ứng dụng   ĐIỀU HÀNH sản xuất",
		"app app app",
		"  Sổ tay hoạt động chính PVN  ",
		"co so co so du lieu du lieu",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestNamesMatchIsSymmetric(t *testing.T) {
	pairs := []struct {
		a, b string
		want bool
	}{
		{"Văn bản", "Hệ thống quản lý văn bản điện tử", true},
		{"Nhân sự", "CSDL Nhân sự PVN", true},
		{"Nhân sự", "Tài chính", false},
		{"PVN", "CSDL PVN", false},
	}
	for _, p := range pairs {
		assert.Equal(t, p.want, NamesMatch(p.a, p.b), "%q vs %q", p.a, p.b)
		assert.Equal(t, p.want, NamesMatch(p.b, p.a), "%q vs %q", p.b, p.a)
	}
}
