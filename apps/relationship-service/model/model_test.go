package model

import (
	"net/http"
	"testing"
)

// TestBuildPairKey 测试无序用户对规范键
func TestBuildPairKey(t *testing.T) {
	if BuildPairKey(7, 3) != BuildPairKey(3, 7) {
		t.Error("pair_key应与参数顺序无关")
	}
	if BuildPairKey(3, 7) != "3:7" {
		t.Errorf("期望3:7, 实际为 %s", BuildPairKey(3, 7))
	}
}

// TestOtherParty 测试边的对方解析
func TestOtherParty(t *testing.T) {
	edge := &RelationshipEdge{UserID: 3, FriendID: 7}
	if edge.OtherParty(3) != 7 || edge.OtherParty(7) != 3 {
		t.Error("OtherParty应返回边上另一方")
	}
}

// TestDecodeActivities 测试活动标签容错解析
func TestDecodeActivities(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`["hiking","chess"]`, 2},
		{`["hiking"," ",""]`, 1}, // 空白项剔除
		{``, 0},
		{`not json`, 0},
		{`{"a":1}`, 0},
	}
	for _, c := range cases {
		got := DecodeActivities(c.raw)
		if got == nil {
			t.Errorf("DecodeActivities(%q) 不应返回nil", c.raw)
		}
		if len(got) != c.want {
			t.Errorf("DecodeActivities(%q) 期望%d个标签, 实际%d个", c.raw, c.want, len(got))
		}
	}
}

// TestValidateEdgeStatus 测试边状态校验
func TestValidateEdgeStatus(t *testing.T) {
	for _, status := range ValidEdgeStatuses {
		if !ValidateEdgeStatus(status) {
			t.Errorf("%s应为合法状态", status)
		}
	}
	for _, status := range []string{"", "deleted", "PENDING"} {
		if ValidateEdgeStatus(status) {
			t.Errorf("%q不应为合法状态", status)
		}
	}
}

// TestHTTPStatus 测试业务错误到HTTP状态码的映射
func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NewValidationError("x"), http.StatusBadRequest},
		{NewSelfActionError("x"), http.StatusBadRequest},
		{NewNotFoundError("x"), http.StatusNotFound},
		{NewConflictError("x"), http.StatusConflict},
		{NewForbiddenError("x"), http.StatusForbidden},
		{NewInvalidStateError("x"), http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) 期望%d, 实际%d", c.err, c.want, got)
		}
	}
}

// TestErrorPredicates 测试错误谓词
func TestErrorPredicates(t *testing.T) {
	if !IsConflict(NewConflictError("x")) {
		t.Error("IsConflict应命中conflict错误")
	}
	if IsConflict(NewNotFoundError("x")) {
		t.Error("IsConflict不应命中not_found错误")
	}
	if IsNotFound(nil) {
		t.Error("nil不应命中任何谓词")
	}
}
