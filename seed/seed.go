// Package seed generates the bootstrap dataset: a handful of hand-authored
// books, users, loans, and reviews, plus procedurally generated extra books
// whose fixtures derive from their index alone. Given the same parameters
// the output is identical, so tests can rely on it bit for bit.
package seed

import (
	"fmt"
	"time"

	"librastore/membership"
	"librastore/store"
)

// DefaultExtraBooks is the number of generated books added on top of the
// hand-authored ones, bringing the total above the store's re-seed
// threshold.
const DefaultExtraBooks = 44

var sampleCategories = []string{
	"文学", "历史", "哲学", "经济", "管理",
	"计算机", "数学", "心理学", "教育", "艺术",
	"工程", "医学", "旅行", "社会科学", "科普",
}

var sampleAuthors = []string{
	"林晓雨", "赵青川", "陈南山", "郭远航", "王语桐", "周可欣",
	"刘航宇", "苏奕辰", "张恬然", "李越泽", "何一帆", "宋岚溪",
}

var samplePublishers = []string{
	"人民文学出版社", "中信出版社", "机械工业出版社", "电子工业出版社",
	"北京大学出版社", "复旦大学出版社", "上海译文出版社",
}

var sampleDescriptions = []string{
	"通过真实案例串联理论与实践，帮助读者建立系统知识框架。",
	"以深入浅出的语言讲述复杂概念，适合作为进阶学习读物。",
	"围绕现实问题展开分析，引导读者思考与应用。",
	"兼顾历史脉络与当代视角，内容充实且信息量丰富。",
	"提供清晰结构与图表，帮助快速掌握重点。",
}

var sampleCoverImages = []string{
	"https://images.unsplash.com/photo-1455885666463-1ea8f31b79aa?auto=format&fit=crop&w=400&q=80",
	"https://images.unsplash.com/photo-1512820790803-83ca734da794?auto=format&fit=crop&w=400&q=80",
	"https://images.unsplash.com/photo-1495446815901-a7297e633e8d?auto=format&fit=crop&w=400&q=80",
	"https://images.unsplash.com/photo-1481627834876-b7833e8f5570?auto=format&fit=crop&w=400&q=80",
	"https://images.unsplash.com/photo-1434030216411-0b793f4b4173?auto=format&fit=crop&w=400&q=80",
	"https://images.unsplash.com/photo-1521587760476-6c12a4b040da?auto=format&fit=crop&w=400&q=80",
}

var sampleComments = []string{
	"内容详实，帮助我建立了系统认识。",
	"案例部分非常精彩，贴近实践。",
	"结构清晰，可读性强，值得推荐。",
	"希望后续版本加入更多拓展阅读。",
}

// Params controls dataset generation. Now anchors every relative day offset;
// ExtraBooks <= 0 falls back to DefaultExtraBooks.
type Params struct {
	Now        time.Time
	ExtraBooks int
}

// Generator adapts Dataset to the store's SeedFunc signature.
func Generator(extraBooks int) store.SeedFunc {
	return func(now time.Time) store.State {
		return Dataset(Params{Now: now, ExtraBooks: extraBooks})
	}
}

// Dataset produces the full referentially consistent seed state.
func Dataset(p Params) store.State {
	if p.ExtraBooks <= 0 {
		p.ExtraBooks = DefaultExtraBooks
	}
	now := p.Now

	books := baseBooks(now)
	reviews := baseReviews(now)

	for i := 0; i < p.ExtraBooks; i++ {
		book := extraBook(now, i)
		bookReviews := extraReviews(now, i, book.ID)

		var sum int
		for _, r := range bookReviews {
			sum += r.Rating
		}
		if len(bookReviews) > 0 {
			book.AvgRating = store.Round2(float64(sum) / float64(len(bookReviews)))
		}
		book.ReviewCount = len(bookReviews)

		books = append(books, book)
		reviews = append(reviews, bookReviews...)
	}

	return store.State{
		Users:         seedUsers(now),
		Books:         books,
		BorrowRecords: seedBorrowRecords(now),
		Reviews:       reviews,
	}
}

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func daysFromNow(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, days)
}

// extraBook derives every fixture field of generated book i from the index
// alone, cycling through the sample lists.
func extraBook(now time.Time, i int) store.Book {
	stock := 4 + i%6
	return store.Book{
		ID:          fmt.Sprintf("book-extra-%d", i+1),
		Title:       fmt.Sprintf("%s精选读本 %d", sampleCategories[i%len(sampleCategories)], i+1),
		Author:      sampleAuthors[i%len(sampleAuthors)],
		ISBN:        fmt.Sprintf("%d", 9780000000000+int64(i)),
		Publisher:   samplePublishers[i%len(samplePublishers)],
		PublishDate: daysAgo(now, 30+i*3).Format("2006-01-02"),
		Category:    sampleCategories[i%len(sampleCategories)],
		Description: sampleDescriptions[i%len(sampleDescriptions)],
		Stock:       stock,
		Available:   max(1, stock-i%4),
		CoverImage:  sampleCoverImages[i%len(sampleCoverImages)],
		CreatedAt:   daysAgo(now, 120-i%40),
		UpdatedAt:   daysAgo(now, 20-i%10),
	}
}

// extraReviews generates a pseudo-random (index-derived) number of reviews
// for generated book i, alternating between the two seed reader accounts.
func extraReviews(now time.Time, i int, bookID string) []store.Review {
	total := 6 + (i*3)%35
	reviews := make([]store.Review, 0, total)
	for j := 0; j < total; j++ {
		userID := "user-reader"
		if j%2 == 1 {
			userID = "user-guest"
		}
		reviews = append(reviews, store.Review{
			ID:        fmt.Sprintf("review-extra-%d-%d", i, j),
			UserID:    userID,
			BookID:    bookID,
			Rating:    3 + j%3,
			Comment:   sampleComments[j%len(sampleComments)],
			CreatedAt: daysAgo(now, 5+(i+j)%20),
		})
	}
	return reviews
}

// Fixed salts keep the seed credentials byte-for-byte reproducible.
var (
	adminSalt  = []byte("seed-salt-admin0")
	readerSalt = []byte("seed-salt-reader")
	guestSalt  = []byte("seed-salt-guest0")
)

func seedUsers(now time.Time) []store.User {
	return []store.User{
		{
			ID:           "user-admin",
			Email:        "admin@library.local",
			Name:         "系统管理员",
			Role:         store.RoleAdmin,
			PasswordHash: membership.HashPassword("admin123", adminSalt),
			PasswordSalt: membership.EncodeSalt(adminSalt),
			CreatedAt:    daysAgo(now, 220),
			UpdatedAt:    daysAgo(now, 5),
		},
		{
			ID:           "user-reader",
			Email:        "reader@library.local",
			Name:         "普通读者",
			Role:         store.RoleUser,
			PasswordHash: membership.HashPassword("reader123", readerSalt),
			PasswordSalt: membership.EncodeSalt(readerSalt),
			CreatedAt:    daysAgo(now, 150),
			UpdatedAt:    daysAgo(now, 2),
		},
		{
			ID:           "user-guest",
			Email:        "guest@library.local",
			Name:         "体验读者",
			Role:         store.RoleUser,
			PasswordHash: membership.HashPassword("guest123", guestSalt),
			PasswordSalt: membership.EncodeSalt(guestSalt),
			CreatedAt:    daysAgo(now, 90),
			UpdatedAt:    daysAgo(now, 1),
		},
	}
}

func baseBooks(now time.Time) []store.Book {
	return []store.Book{
		{
			ID:          "book-ai",
			Title:       "人工智能导论",
			Author:      "李明",
			ISBN:        "9787302486325",
			Publisher:   "清华大学出版社",
			PublishDate: "2023-01-15",
			Category:    "计算机",
			Description: "全面介绍人工智能发展历史、核心算法和典型应用的入门教材。",
			Stock:       5,
			Available:   3,
			CoverImage:  "https://images.unsplash.com/photo-1545239351-1141bd82e8a6?auto=format&fit=crop&w=400&q=80",
			AvgRating:   4.5,
			ReviewCount: 2,
			CreatedAt:   daysAgo(now, 180),
			UpdatedAt:   daysAgo(now, 3),
		},
		{
			ID:          "book-algorithm",
			Title:       "数据结构与算法精要",
			Author:      "王华",
			ISBN:        "9787111593350",
			Publisher:   "机械工业出版社",
			PublishDate: "2022-08-20",
			Category:    "计算机",
			Description: "通过直观示例讲解常用数据结构与算法设计的经典教材。",
			Stock:       8,
			Available:   6,
			CoverImage:  "https://images.unsplash.com/photo-1517430816045-df4b7de11d1d?auto=format&fit=crop&w=400&q=80",
			CreatedAt:   daysAgo(now, 200),
			UpdatedAt:   daysAgo(now, 7),
		},
		{
			ID:          "book-ml",
			Title:       "机器学习实战",
			Author:      "张三",
			ISBN:        "9787111613522",
			Publisher:   "机械工业出版社",
			PublishDate: "2023-03-10",
			Category:    "计算机",
			Description: "以项目驱动的方式实践监督与无监督学习算法。",
			Stock:       6,
			Available:   4,
			CoverImage:  "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?auto=format&fit=crop&w=400&q=80",
			AvgRating:   4.5,
			ReviewCount: 2,
			CreatedAt:   daysAgo(now, 120),
			UpdatedAt:   daysAgo(now, 4),
		},
		{
			ID:          "book-prince",
			Title:       "小王子",
			Author:      "安托万·德·圣埃克苏佩里",
			ISBN:        "9787544270878",
			Publisher:   "南海出版公司",
			PublishDate: "2022-12-15",
			Category:    "文学",
			Description: "温柔而哲理的童话，探讨爱与责任。",
			Stock:       15,
			Available:   12,
			CoverImage:  "https://images.unsplash.com/photo-1507842217343-583bb7270b66?auto=format&fit=crop&w=400&q=80",
			AvgRating:   5,
			ReviewCount: 2,
			CreatedAt:   daysAgo(now, 160),
			UpdatedAt:   daysAgo(now, 12),
		},
		{
			ID:          "book-human",
			Title:       "人类简史",
			Author:      "尤瓦尔·赫拉利",
			ISBN:        "9787508647357",
			Publisher:   "中信出版社",
			PublishDate: "2023-02-08",
			Category:    "历史",
			Description: "跨学科视角梳理人类文明进程的畅销著作。",
			Stock:       6,
			Available:   5,
			CoverImage:  "https://images.unsplash.com/photo-1521587760476-6c12a4b040da?auto=format&fit=crop&w=400&q=80",
			AvgRating:   4,
			ReviewCount: 1,
			CreatedAt:   daysAgo(now, 140),
			UpdatedAt:   daysAgo(now, 9),
		},
		{
			ID:          "book-live",
			Title:       "活着",
			Author:      "余华",
			ISBN:        "9787506365437",
			Publisher:   "作家出版社",
			PublishDate: "2022-09-12",
			Category:    "文学",
			Description: "普通人在历史巨变中顽强求生的感人故事。",
			Stock:       6,
			Available:   5,
			CoverImage:  "https://images.unsplash.com/photo-1496104679561-38d3afc06c05?auto=format&fit=crop&w=400&q=80",
			AvgRating:   5,
			ReviewCount: 1,
			CreatedAt:   daysAgo(now, 210),
			UpdatedAt:   daysAgo(now, 15),
		},
	}
}

// seedBorrowRecords hand-authors one active, one returned, and one overdue
// loan.
func seedBorrowRecords(now time.Time) []store.BorrowRecord {
	returned := daysAgo(now, 15)
	return []store.BorrowRecord{
		{
			ID:         "borrow-1",
			UserID:     "user-reader",
			BookID:     "book-ai",
			BorrowDate: daysAgo(now, 10),
			DueDate:    daysFromNow(now, 20),
			Status:     store.StatusBorrowed,
			RenewCount: 1,
			CreatedAt:  daysAgo(now, 10),
		},
		{
			ID:         "borrow-2",
			UserID:     "user-reader",
			BookID:     "book-live",
			BorrowDate: daysAgo(now, 50),
			DueDate:    daysAgo(now, 20),
			ReturnDate: &returned,
			Status:     store.StatusReturned,
			CreatedAt:  daysAgo(now, 50),
		},
		{
			ID:         "borrow-3",
			UserID:     "user-guest",
			BookID:     "book-human",
			BorrowDate: daysAgo(now, 40),
			DueDate:    daysAgo(now, 5),
			Status:     store.StatusOverdue,
			RenewCount: 2,
			CreatedAt:  daysAgo(now, 40),
		},
	}
}

func baseReviews(now time.Time) []store.Review {
	return []store.Review{
		{ID: "review-1", UserID: "user-reader", BookID: "book-ai", Rating: 5,
			Comment: "内容循序渐进，案例贴近实际项目。", CreatedAt: daysAgo(now, 6)},
		{ID: "review-2", UserID: "user-guest", BookID: "book-ai", Rating: 4,
			Comment: "理论部分稍显枯燥，但整体质量很高。", CreatedAt: daysAgo(now, 4)},
		{ID: "review-3", UserID: "user-reader", BookID: "book-prince", Rating: 5,
			Comment: "读完之后久久不能平静，非常治愈。", CreatedAt: daysAgo(now, 12)},
		{ID: "review-4", UserID: "user-guest", BookID: "book-prince", Rating: 5,
			Comment: "带孩子一起读，体会到了成长的意义。", CreatedAt: daysAgo(now, 11)},
		{ID: "review-5", UserID: "user-reader", BookID: "book-ml", Rating: 5,
			Comment: "任务驱动的讲解方式非常适合入门机器学习。", CreatedAt: daysAgo(now, 8)},
		{ID: "review-6", UserID: "user-guest", BookID: "book-ml", Rating: 4,
			Comment: "希望新增更多深度学习章节。", CreatedAt: daysAgo(now, 7)},
		{ID: "review-7", UserID: "user-reader", BookID: "book-human", Rating: 4,
			Comment: "宏观视角下的人类发展史，很震撼。", CreatedAt: daysAgo(now, 14)},
		{ID: "review-8", UserID: "user-guest", BookID: "book-live", Rating: 5,
			Comment: "文字质朴却力量十足，值得反复阅读。", CreatedAt: daysAgo(now, 13)},
	}
}
