package roster

// Seed returns the fixed roster loaded at process start.
func Seed() []Student {
	return []Student{
		{
			ID:         "stu-001",
			Name:       "Arjun Ramesh",
			RegNo:      "CS2023001",
			Email:      "arjun.ramesh@college.edu",
			Department: "Computer Science",
			Year:       2,
			Semester:   4,
			AvatarURL:  "https://i.pravatar.cc/150?u=cs2023001",
			Contact:    "+91 98400 12345",
			Address:    "12, Gandhi Street, Chennai",

			TotalClasses:    40,
			AttendedClasses: 37,

			FeeStatus: FeePaid,
			TotalFee:  85000,
			PaidFee:   85000,

			CGPA: 8.7,
			Results: []SubjectResult{
				{Code: "CS301", Name: "Data Structures", Marks: 88, MaxMarks: 100, Grade: "A", Status: ResultPass},
				{Code: "CS302", Name: "Operating Systems", Marks: 76, MaxMarks: 100, Grade: "B+", Status: ResultPass},
				{Code: "MA201", Name: "Discrete Mathematics", Marks: 91, MaxMarks: 100, Grade: "A+", Status: ResultPass},
			},
		},
		{
			ID:         "stu-002",
			Name:       "Priya Venkatesan",
			RegNo:      "IT2023014",
			Email:      "priya.v@college.edu",
			Department: "Information Technology",
			Year:       2,
			Semester:   4,
			AvatarURL:  "https://i.pravatar.cc/150?u=it2023014",
			Contact:    "+91 98841 55667",
			Address:    "4A, Lake View Road, Coimbatore",

			TotalClasses:    42,
			AttendedClasses: 33,

			FeeStatus: FeePending,
			TotalFee:  78000,
			PaidFee:   39000,

			CGPA: 9.1,
			Results: []SubjectResult{
				{Code: "IT301", Name: "Database Systems", Marks: 94, MaxMarks: 100, Grade: "O", Status: ResultPass},
				{Code: "IT302", Name: "Computer Networks", Marks: 85, MaxMarks: 100, Grade: "A", Status: ResultPass},
			},
		},
		{
			ID:         "stu-003",
			Name:       "Karthik Subramanian",
			RegNo:      "ME2022047",
			Email:      "karthik.s@college.edu",
			Department: "Mechanical Engineering",
			Year:       3,
			Semester:   6,
			AvatarURL:  "https://i.pravatar.cc/150?u=me2022047",
			Contact:    "+91 90030 77812",
			Address:    "23, Anna Nagar, Madurai",

			TotalClasses:    38,
			AttendedClasses: 24,

			FeeStatus: FeeOverdue,
			TotalFee:  72000,
			PaidFee:   18000,

			CGPA: 6.8,
			Results: []SubjectResult{
				{Code: "ME501", Name: "Thermodynamics II", Marks: 52, MaxMarks: 100, Grade: "C", Status: ResultPass},
				{Code: "ME502", Name: "Machine Design", Marks: 31, MaxMarks: 100, Grade: "F", Status: ResultFail},
				{Code: "ME503", Name: "Fluid Mechanics", Marks: 61, MaxMarks: 100, Grade: "B", Status: ResultPass},
			},
		},
		{
			ID:         "stu-004",
			Name:       "Deepika Nair",
			RegNo:      "EC2023102",
			Email:      "deepika.nair@college.edu",
			Department: "Electronics & Communication",
			Year:       2,
			Semester:   3,
			AvatarURL:  "https://i.pravatar.cc/150?u=ec2023102",
			Contact:    "+91 96001 33458",
			Address:    "7, Beach Road, Kochi",

			TotalClasses:    36,
			AttendedClasses: 36,

			FeeStatus: FeePaid,
			TotalFee:  80000,
			PaidFee:   80000,

			CGPA: 9.4,
			Results: []SubjectResult{
				{Code: "EC201", Name: "Signals and Systems", Marks: 96, MaxMarks: 100, Grade: "O", Status: ResultPass},
				{Code: "EC202", Name: "Digital Electronics", Marks: 89, MaxMarks: 100, Grade: "A", Status: ResultPass},
			},
		},
		{
			ID:         "stu-005",
			Name:       "Mohammed Faisal",
			RegNo:      "CE2021033",
			Email:      "m.faisal@college.edu",
			Department: "Civil Engineering",
			Year:       4,
			Semester:   8,
			AvatarURL:  "https://i.pravatar.cc/150?u=ce2021033",
			Contact:    "+91 99620 48120",
			Address:    "115, Mount Road, Trichy",

			TotalClasses:    30,
			AttendedClasses: 21,

			FeeStatus: FeePending,
			TotalFee:  68000,
			PaidFee:   51000,

			CGPA: 7.5,
			Results: []SubjectResult{
				{Code: "CE701", Name: "Structural Analysis", Marks: 68, MaxMarks: 100, Grade: "B+", Status: ResultPass},
				{Code: "CE702", Name: "Geotechnical Engineering", Marks: 74, MaxMarks: 100, Grade: "B+", Status: ResultPass},
				{Code: "CE703", Name: "Construction Management", Marks: 81, MaxMarks: 100, Grade: "A", Status: ResultPass},
			},
		},
	}
}
