package show

import (
	"encoding/json"
	"strings"

	"tuition-show/biz/infrastructure/consts"
)

// SubjectList 兼容数组与逗号分隔字符串两种写法
type SubjectList []string

func (l *SubjectList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = trimAll(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return consts.Validation("listOfSubjects must be an array or a comma separated string")
	}
	*l = trimAll(strings.Split(s, ","))
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type TeacherSignUpReq struct {
	FullName       string      `json:"fullName"`
	Email          string      `json:"email"`
	Mobile         string      `json:"mobile,omitempty"`
	Qualification  string      `json:"qualification,omitempty"`
	Experiance     string      `json:"experiance,omitempty"`
	Experience     string      `json:"experience,omitempty"`
	ListOfSubjects SubjectList `json:"listOfSubjects,omitempty"`
	ProfileImage   string      `json:"profileImage,omitempty"`
	CvUrl          string      `json:"cvUrl,omitempty"`
	AboutTeacher   string      `json:"aboutTeacher,omitempty"`
}

func (r *TeacherSignUpReq) Validate() error {
	if blank(r.FullName) {
		return consts.Required("fullName")
	}
	return validateEmail(r.Email)
}

// GetExperience 两种拼写都接受
func (r *TeacherSignUpReq) GetExperience() string {
	if r.Experiance != "" {
		return r.Experiance
	}
	return r.Experience
}

type StudentSignUpReq struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile,omitempty"`
}

func (r *StudentSignUpReq) Validate() error {
	if blank(r.FullName) {
		return consts.Required("fullName")
	}
	return validateEmail(r.Email)
}

type VerifyOtpReq struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

func (r *VerifyOtpReq) Validate() error {
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if blank(r.Otp) {
		return consts.Required("otp")
	}
	return nil
}

type SignInResp struct {
	Id           string `json:"id"`
	AccessToken  string `json:"accessToken"`
	AccessExpire int64  `json:"accessExpire"`
	Role         string `json:"role"`
	FullName     string `json:"fullName"`
}

type CheckRoleResp struct {
	Role string `json:"role"`
}

type TeacherStatusResp struct {
	TeacherStatus string `json:"teacherStatus"`
}

type StudentStatusResp struct {
	StudentStatus string `json:"studentStatus"`
}
