package main

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/route"

	"tuition-show/biz/adaptor"
	handler "tuition-show/biz/adaptor/controller"
)

// customizeRegister registers customize routers.
// 鉴权与角色校验挂在路由上，先于 handler 的请求体解析执行
func customizedRegister(r route.IRouter, auth app.HandlerFunc) {
	r.GET("/ping", handler.Ping)

	login, admin := adaptor.RequireAuth(), adaptor.RequireAdmin()

	api := r.Group("/api", auth)
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/teacher-signup", handler.TeacherSignUp)
		authGroup.POST("/student-signup", handler.StudentSignUp)
		authGroup.POST("/send-otp", handler.SendOtp)
		authGroup.POST("/verify-otp", handler.VerifyOtp)
		authGroup.POST("/check-role", handler.CheckRole)

		// 试听课预约
		api.POST("/demoClass", login, handler.CreateDemoClass)
		api.GET("/demoClass", login, handler.ListDemoClasses)
		api.PUT("/demoClass", admin, handler.UpdateDemoClass)
		api.GET("/demoClass/:id", login, handler.GetDemoClass)
		api.DELETE("/demoClass/:id", admin, handler.DeleteDemoClass)
		api.GET("/demo-classes-assign", login, handler.ListAssignedDemoClasses)

		// 审核
		api.GET("/signup-std", admin, handler.ListSignUpStudents)
		api.PUT("/signup-std", admin, handler.UpdateStudentStatus)
		api.GET("/approve-teacher", admin, handler.ListApprovedTeachers)
		api.POST("/migrate-student-status", admin, handler.MigrateStudentStatus)

		teachers := api.Group("/teachers")
		teachers.POST("/status", handler.GetTeacherStatus)
		teachers.GET("", admin, handler.ListTeachers)
		teachers.PUT("", admin, handler.UpdateTeacherStatus)
		teachers.GET("/:id", admin, handler.GetTeacher)
		teachers.DELETE("/:id", admin, handler.DeleteTeacher)

		students := api.Group("/students")
		students.POST("/status", handler.GetStudentStatus)
		students.GET("", admin, handler.ListStudents)
		students.GET("/:id", admin, handler.GetStudent)
		students.DELETE("/:id", admin, handler.DeleteStudent)
		students.GET("/:id/my-courses", login, handler.ListStudentCourses)

		api.POST("/course", admin, handler.CreateCourse)
		api.PUT("/course/:id/consume", login, handler.ConsumeClass)
		api.DELETE("/course/:id", admin, handler.DeleteCourse)

		messages := api.Group("/courseMessages/:courseId", login)
		messages.GET("", handler.ListCourseMessages)
		messages.POST("", handler.SendCourseMessage)
		messages.DELETE("", handler.DeleteCourseMessage)

		api.GET("/transaction", admin, handler.ListTransactions)
		api.GET("/admin-dashboard", admin, handler.GetDashboard)
		api.GET("/subjects", handler.ListSubjects)
		api.GET("/outbox", admin, handler.ListOutbox)
	}
}
