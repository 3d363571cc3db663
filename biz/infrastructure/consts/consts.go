package consts

// 数据库相关
const (
	ID                 = "_id"
	Role               = "role"
	Email              = "email"
	Status             = "status"
	StudentID          = "studentId"
	TeacherID          = "teacherId"
	CourseID           = "courseId"
	SenderID           = "senderId"
	UserID             = "userId"
	TeacherStatus      = "teacherStatus"
	StudentStatus      = "studentStatus"
	PaymentStatus      = "paymentStatus"
	BookingDateAndTime = "bookingDateAndTime"
	RemainingClasses   = "remainingClasses"
	IsVerified         = "isVerified"
	CreatedAt          = "createdAt"
	UpdatedAt          = "updatedAt"
	Attempts           = "attempts"
)

// mongo 操作符
const (
	Set    = "$set"
	Unset  = "$unset"
	Inc    = "$inc"
	In     = "$in"
	Nin    = "$nin"
	Or     = "$or"
	Exists = "$exists"
	Gt     = "$gt"
	Lt     = "$lt"
)

// 角色
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// 交易状态
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// http
const (
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
	Authorization   = "Authorization"
	BearerPrefix    = "Bearer "
)

// 默认值
const (
	SubjectOther  = "other"
	OtpLength     = 6
	NotAvailable  = "N/A"
	DefaultStatus = "pending"
)
