package show

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"tuition-show/biz/infrastructure/consts"

	"google.golang.org/grpc/codes"
)

func validCreateReq() *CreateDemoClassReq {
	return &CreateDemoClassReq{
		FatherName: "Imran",
		Email:      "parent@example.com",
		Grade:      "7",
		Subject:    "Mathematics",
		City:       "Lahore",
		Country:    "Pakistan",
		Date:       "2026-11-02T16:30",
	}
}

func TestCreateDemoClassReqMissingFields(t *testing.T) {
	fields := map[string]func(r *CreateDemoClassReq){
		"fatherName": func(r *CreateDemoClassReq) { r.FatherName = "" },
		"email":      func(r *CreateDemoClassReq) { r.Email = " " },
		"grade":      func(r *CreateDemoClassReq) { r.Grade = "" },
		"subject":    func(r *CreateDemoClassReq) { r.Subject = "" },
		"city":       func(r *CreateDemoClassReq) { r.City = "" },
		"country":    func(r *CreateDemoClassReq) { r.Country = "" },
		"date":       func(r *CreateDemoClassReq) { r.Date = "" },
	}
	for name, clear := range fields {
		r := validCreateReq()
		clear(r)
		err := r.Validate()
		var en *consts.Errno
		if !errors.As(err, &en) || en.Code() != codes.InvalidArgument {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if err.Error() != name+" is required" {
			t.Fatalf("%s: message = %q", name, err.Error())
		}
	}
}

func TestCreateDemoClassReqOtherSubject(t *testing.T) {
	r := validCreateReq()
	r.Subject = "other"
	if err := r.Validate(); err == nil || err.Error() != "otherSubject is required" {
		t.Fatalf("expected otherSubject error, got %v", err)
	}
	r.OtherSubject = "Astronomy"
	if err := r.Validate(); err != nil {
		t.Fatal(err)
	}
	if r.ResolvedSubject() != "Astronomy" {
		t.Fatalf("resolved subject = %s", r.ResolvedSubject())
	}
}

func TestCreateDemoClassReqFormats(t *testing.T) {
	r := validCreateReq()
	r.Email = "not-an-email"
	if err := r.Validate(); err == nil || !strings.Contains(err.Error(), "Invalid email") {
		t.Fatalf("email: %v", err)
	}
	r = validCreateReq()
	r.Date = "next tuesday"
	if err := r.Validate(); err == nil {
		t.Fatal("expected date error")
	}
	r = validCreateReq()
	r.TimeZone = "Nowhere/City"
	if err := r.Validate(); err == nil {
		t.Fatal("expected timezone error")
	}
	for _, d := range []string{"2026-11-02", "2026-11-02T16:30", "2026-11-02T16:30:00+05:00"} {
		if _, err := ParseDate(d); err != nil {
			t.Fatalf("%s: %v", d, err)
		}
	}
}

func TestUpdateDemoClassReqValidate(t *testing.T) {
	s := func(v string) *string { return &v }
	cases := []struct {
		name string
		req  UpdateDemoClassReq
		ok   bool
	}{
		{"missing id", UpdateDemoClassReq{}, false},
		{"id only", UpdateDemoClassReq{Id: "x"}, true},
		{"unknown status", UpdateDemoClassReq{Id: "x", Status: s("archived")}, false},
		{"known status", UpdateDemoClassReq{Id: "x", Status: s("confirmed")}, true},
		{"relative link", UpdateDemoClassReq{Id: "x", JoinLink: s("/meet/abc")}, false},
		{"ftp link", UpdateDemoClassReq{Id: "x", JoinLink: s("ftp://meet.example.com/abc")}, false},
		{"https link", UpdateDemoClassReq{Id: "x", JoinLink: s("https://meet.example.com/abc")}, true},
		{"empty teacher", UpdateDemoClassReq{Id: "x", TeacherId: s("")}, false},
		{"bad zone", UpdateDemoClassReq{Id: "x", TimeZone: s("Mars/Base")}, false},
		{"bad date", UpdateDemoClassReq{Id: "x", BookingDateAndTime: s("soon")}, false},
	}
	for _, tc := range cases {
		err := tc.req.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("%s: err = %v", tc.name, err)
		}
	}
}

func TestSubjectListUnmarshal(t *testing.T) {
	var r TeacherSignUpReq
	if err := json.Unmarshal([]byte(`{"listOfSubjects":"Math, Physics ,,Urdu"}`), &r); err != nil {
		t.Fatal(err)
	}
	if len(r.ListOfSubjects) != 3 || r.ListOfSubjects[1] != "Physics" {
		t.Fatalf("comma string: %v", r.ListOfSubjects)
	}
	if err := json.Unmarshal([]byte(`{"listOfSubjects":["Chemistry"]}`), &r); err != nil {
		t.Fatal(err)
	}
	if len(r.ListOfSubjects) != 1 || r.ListOfSubjects[0] != "Chemistry" {
		t.Fatalf("array: %v", r.ListOfSubjects)
	}
	if err := json.Unmarshal([]byte(`{"listOfSubjects":42}`), &r); err == nil {
		t.Fatal("expected error for number")
	}
}

func TestApprovalReqValidate(t *testing.T) {
	if err := (&UpdateTeacherStatusReq{Id: "x", TeacherStatus: "approved"}).Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (&UpdateTeacherStatusReq{Id: "x", TeacherStatus: "banned"}).Validate(); !errors.Is(err, consts.ErrInvalidStatus) {
		t.Fatalf("got %v", err)
	}
	if err := (&UpdateStudentStatusReq{Id: "x"}).Validate(); err == nil {
		t.Fatal("expected missing status")
	}
	if err := (&SendMessageReq{}).Validate(); !errors.Is(err, consts.ErrEmptyMessage) {
		t.Fatalf("got %v", err)
	}
	if err := (&CreateCourseReq{StudentId: "s", Subject: "Math", RemainingClasses: -1}).Validate(); err == nil {
		t.Fatal("expected negative classes error")
	}
}
