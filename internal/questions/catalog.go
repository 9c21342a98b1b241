package questions

// Static question catalog. The app deliberately ships a fixed set instead of
// fetching live questions; unknown categories and roles fall back to the
// generic list rather than failing.

var technicalCatalog = map[string][]string{
	"dbms": {
		"What is ACID in database transactions?",
		"Explain normalization and its different forms.",
		"What is the difference between a primary key and a foreign key?",
		"Explain the concept of indexing in DBMS.",
		"What is a deadlock in DBMS and how can it be prevented?",
		"Describe the difference between OLAP and OLTP systems.",
		"What are the different types of joins in SQL?",
		"Explain the CAP theorem in distributed database systems.",
		"What is denormalization and when would you use it?",
		"Describe the ACID properties with examples.",
	},
	"os": {
		"What is a process and how is it different from a thread?",
		"Explain the concept of virtual memory in operating systems.",
		"What is a deadlock and what are the conditions for a deadlock to occur?",
		"Describe the different CPU scheduling algorithms.",
		"What is paging and segmentation in memory management?",
		"Explain the producer-consumer problem and its solutions.",
		"What are semaphores and mutexes?",
		"Describe the different types of process scheduling.",
		"What is thrashing in operating systems?",
		"Explain the concept of a file system in OS.",
	},
	"data-structures": {
		"Explain the time complexity of common operations in arrays, linked lists, and hash tables.",
		"What is a binary search tree and how does it differ from a balanced tree?",
		"Explain the concept of dynamic programming with an example.",
		"What is the difference between BFS and DFS traversal algorithms?",
		"Describe how a hash table works and how collisions are resolved.",
		"What is the time complexity of quicksort, and in what scenarios might it perform poorly?",
		"Explain the concept of a heap data structure and its applications.",
		"What is a graph data structure and what are its common representations?",
		"Describe the concept of a trie and its applications.",
		"What is the difference between a stack and a queue?",
	},
	"computer-networks": {
		"Explain the OSI model and its layers.",
		"What is TCP/IP and how does it differ from the OSI model?",
		"Describe the three-way handshake in TCP connection establishment.",
		"What is the difference between HTTP and HTTPS?",
		"Explain the concept of subnetting in IP networks.",
		"What is DNS and how does it work?",
		"Describe the difference between a router and a switch.",
		"What is NAT (Network Address Translation) and why is it used?",
		"Explain the concept of CIDR (Classless Inter-Domain Routing).",
		"What is a firewall and what are its types?",
	},
}

var behavioralCatalog = map[string]map[string][]string{
	"software-engineer": {
		"entry": {
			"Tell me about yourself and your programming background.",
			"Explain the difference between a stack and a queue data structure.",
			"How would you approach debugging a web application?",
			"What programming languages are you most comfortable with and why?",
			"How do you keep your technical skills up-to-date?",
		},
		"mid": {
			"Tell me about a complex technical challenge you've faced and how you solved it.",
			"Explain how you would design a URL shortening service.",
			"How do you approach testing in your development process?",
			"Describe your experience with CI/CD pipelines.",
			"How do you optimize application performance?",
		},
		"senior": {
			"Tell me about your experience leading technical projects.",
			"How would you design a scalable microservice architecture?",
			"Describe your approach to mentoring junior developers.",
			"How do you balance technical debt with feature development?",
			"Describe how you've implemented system design patterns in previous roles.",
		},
	},
	"product-manager": {
		"entry": {
			"How do you prioritize features for a product?",
			"Tell me about a time when you had to make a decision with limited information.",
			"How do you gather user feedback for products?",
			"What metrics would you use to measure product success?",
			"How do you communicate product requirements to the development team?",
		},
		"mid": {
			"Tell me about a product launch you managed and what you learned.",
			"How do you balance stakeholder requests with user needs?",
			"Describe how you've used data to make product decisions.",
			"How would you approach a product that's losing market share?",
			"Tell me about how you work with engineers and designers.",
		},
		"senior": {
			"Describe your product strategy experience and methodology.",
			"How do you approach building and leading a product team?",
			"Tell me about a time you had to pivot a product direction.",
			"How do you align product roadmaps with company vision?",
			"Describe how you've managed competing priorities across multiple products.",
		},
	},
}

// defaultQuestions covers any role/level combination without its own list.
var defaultQuestions = []string{
	"Tell me about yourself and your professional background.",
	"What attracted you to this role?",
	"Describe a challenging situation at work and how you handled it.",
	"What are your greatest professional strengths?",
	"Where do you see yourself in five years?",
}

var hrQuestions = []string{
	"Tell me about yourself.",
	"What are your strengths and weaknesses?",
	"Why do you want to work for this company?",
	"Where do you see yourself in 5 years?",
	"Describe a challenging situation and how you handled it.",
	"Why should we hire you?",
	"What is your greatest professional achievement?",
	"How do you handle stress and pressure?",
	"Describe your leadership style.",
	"Do you have any questions for us?",
}

// Label describes a selectable option for the setup screen.
type Label struct {
	Value string `json:"value"`
	Name  string `json:"label"`
}

func TechnicalCategories() []Label {
	return []Label{
		{Value: "dbms", Name: "Database Management Systems (DBMS)"},
		{Value: "os", Name: "Operating Systems"},
		{Value: "data-structures", Name: "Data Structures & Algorithms"},
		{Value: "computer-networks", Name: "Computer Networks"},
	}
}

func Roles() []Label {
	return []Label{
		{Value: "software-engineer", Name: "Software Engineer"},
		{Value: "product-manager", Name: "Product Manager"},
		{Value: "data-scientist", Name: "Data Scientist"},
		{Value: "ux-designer", Name: "UX Designer"},
		{Value: "marketing", Name: "Marketing"},
	}
}
