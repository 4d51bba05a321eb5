// AngelaMos | 2026
// content.go

package pages

import "github.com/carterperez-dev/balansai/internal/core"

type Feature struct {
	Title       string
	Description string
}

var Features = []Feature{
	{"Avtomatik buxgalteriya", "Kirim va chiqimlarni AI o'zi tasniflaydi va hisobotlarni tayyorlaydi."},
	{"Soliq maslahatchisi", "O'zbekiston soliq kodeksi bo'yicha savollarga darhol javob."},
	{"Moliyaviy tahlil", "Pul oqimi, foyda va xarajatlar bo'yicha tushunarli grafiklar."},
	{"Hujjatlar", "Hisob-faktura va dalolatnomalarni bir necha soniyada yarating."},
	{"Xavfsizlik", "Ma'lumotlaringiz shifrlangan holda saqlanadi."},
	{"24/7 yordam", "AI yordamchi kun-u tun ishlaydi."},
}

type Plan struct {
	Key      string
	Name     string
	Price    core.Amount
	Features []string
	Featured bool
}

var Plans = []Plan{
	{
		Key: "free", Name: "Bepul", Price: "0",
		Features: []string{"Oyiga 20 ta savol", "Asosiy hisobotlar"},
	},
	{
		Key: "pro", Name: "Pro", Price: "149000", Featured: true,
		Features: []string{"Cheksiz savollar", "Soliq hisobotlari", "Hujjat shablonlari"},
	},
	{
		Key: "enterprise", Name: "Biznes", Price: "990000",
		Features: []string{"Bir nechta foydalanuvchi", "API integratsiya", "Shaxsiy menejer"},
	},
}

type Question struct {
	Question string
	Answer   string
}

var FAQ = []Question{
	{"Balans AI nima?", "Kichik va o'rta biznes uchun sun'iy intellektga asoslangan moliyaviy yordamchi."},
	{"Bepul tarifda nimalar bor?", "Oyiga 20 ta savol va asosiy hisobotlar. Karta talab qilinmaydi."},
	{"Ma'lumotlarim xavfsizmi?", "Ha. Barcha ma'lumotlar shifrlanadi va uchinchi shaxslarga berilmaydi."},
	{"Qanday to'lov usullari bor?", "Click, Payme va bank o'tkazmasi orqali to'lash mumkin."},
	{"Tarifni qanday o'zgartiraman?", "Kabinetingizdagi to'lovlar bo'limidan yoki biz bilan bog'lanib."},
}
